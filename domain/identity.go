package domain

// IdentityUser is the buyer profile returned by the marketplace backend's
// /user/me endpoint. Resolved once per request, never persisted here.
type IdentityUser struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	DormitoryID *uint64 `json:"dormitory_id"`
}
