package model

// Session is the single user record. An empty Username means nobody is
// logged in.
type Session struct {
	Username        string `json:"username"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// AppData is everything that is persisted.
type AppData struct {
	Tasks []Task  `json:"tasks"`
	User  Session `json:"user"`
}

// Clone copies the task slice so callers can't alias stored state.
func (d AppData) Clone() AppData {
	out := AppData{User: d.User}
	if d.Tasks != nil {
		out.Tasks = make([]Task, len(d.Tasks))
		copy(out.Tasks, d.Tasks)
	}
	return out
}
