package api

type Command interface{}

type ErrorCommand struct {
	Message string
}

type UpdateProgressCommand struct {
	Name    string
	Current int
	Total   int
}
