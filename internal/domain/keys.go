package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID" // external identity provider id (Clerk sub)
	KeyUserEmail CtxKey = "Email"
	KeyUserName  CtxKey = "Name"
	KeyUserRole  CtxKey = "Role"
)
