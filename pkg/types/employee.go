package types

type Employee struct {
	AccountID          int64  `json:"account_id"`
	OrganizationID     int64  `json:"organization_id"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	RequiredModeration bool   `json:"required_moderation"`
	Autoposting        bool   `json:"autoposting_permission"`
	AddEmployee        bool   `json:"add_employee_permission"`
	CreatedAt          int64  `json:"created_at"`
}

type UpdateEmployeePermissions struct {
	RequiredModeration *bool `json:"required_moderation,omitempty"`
	Autoposting        *bool `json:"autoposting_permission,omitempty"`
	AddEmployee        *bool `json:"add_employee_permission,omitempty"`
}
