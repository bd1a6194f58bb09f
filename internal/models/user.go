package models

import "github.com/danmuck/modelcodec/internal/model"

// User is an account reference.
type User struct {
	ID   int32
	Name string
}

var userSchema = model.NewSchema("User", func(r *model.Registrar[User]) {
	model.Field(r, "id", model.Int32, func(u *User) *int32 { return &u.ID })
	model.Field(r, "name", model.String, func(u *User) *string { return &u.Name })
}, model.WithDefaults(func(u *User) {
	u.ID = -1
	u.Name = "unknown"
}))

func (*User) Schema() *model.Schema[User] {
	return userSchema
}

// Response wraps a list of users with a status code and message.
type Response struct {
	Code uint32
	Msg  string
	Data []User
}

var responseSchema = model.NewSchema("Response", func(r *model.Registrar[Response]) {
	model.Field(r, "code", model.Uint32, func(m *Response) *uint32 { return &m.Code })
	model.Field(r, "msg", model.String, func(m *Response) *string { return &m.Msg })
	model.Field(r, "data", model.SliceOf(model.ModelOf(userSchema)), func(m *Response) *[]User { return &m.Data })
}, model.WithDefaults(func(m *Response) {
	m.Data = []User{}
}))

func (*Response) Schema() *model.Schema[Response] {
	return responseSchema
}
