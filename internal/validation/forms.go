package validation

// Form structs carry submitted values. The form tag is the HTML field name and
// the key used in FormErrors.

type NewTopicForm struct {
	Subject string `form:"subject" validate:"required,max=255"`
	Message string `form:"message" validate:"required,max=4000"`
}

type PostForm struct {
	Message string `form:"message" validate:"required,max=4000"`
}

type BoardForm struct {
	Name        string `form:"name" validate:"required,max=30"`
	Description string `form:"description" validate:"required,max=100"`
}

type SignupForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,max=254,email"`
	Password1 string `form:"password1" validate:"required,min=8,bcryptmax,notnumeric"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1" validate:"required,min=8,bcryptmax,notnumeric"`
	NewPassword2 string `form:"new_password2" validate:"required,eqfield=NewPassword1"`
}

type PasswordResetForm struct {
	Email string `form:"email" validate:"required,max=254,email"`
}

type SetPasswordForm struct {
	NewPassword1 string `form:"new_password1" validate:"required,min=8,bcryptmax,notnumeric"`
	NewPassword2 string `form:"new_password2" validate:"required,eqfield=NewPassword1"`
}

type AccountForm struct {
	FirstName string `form:"first_name" validate:"max=30"`
	LastName  string `form:"last_name" validate:"max=150"`
	Email     string `form:"email" validate:"required,max=254,email"`
}
