package gate

// Action describes the kind of operation a subject wants to perform on a resource.
type Action string

const (
	ActionView    Action = "view"
	ActionList    Action = "list"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionCompute Action = "compute"
)
