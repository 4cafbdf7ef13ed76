package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the identity summary returned alongside a freshly issued token.
type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// SubmitAttendanceRequest uses pointer counts so a legitimately zero count is
// distinguishable from an absent field.
type SubmitAttendanceRequest struct {
	ServiceDate    string `json:"service_date"`
	Men            *int   `json:"men"`
	Women          *int   `json:"women"`
	YouthBoys      *int   `json:"youth_boys"`
	YouthGirls     *int   `json:"youth_girls"`
	ChildrenBoys   *int   `json:"children_boys"`
	ChildrenGirls  *int   `json:"children_girls"`
	NewConverts    *int   `json:"new_converts"`
	Youtube        *int   `json:"youtube"`
	TotalHeadcount *int   `json:"total_headcount"`
}

type RecordPaymentRequest struct {
	Date            string `json:"date"`
	PaymentType     string `json:"payment_type"`
	Amount          *int64 `json:"amount"`
	Description     string `json:"description"`
	AccountDetails  string `json:"account_details"`
	ReceiptData     string `json:"receipt_data"`
	ReceiptFilename string `json:"receipt_filename"`
}

type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
}

type CreateProjectRequest struct {
	ProjectName  string `json:"project_name"`
	TargetAmount *int64 `json:"target_amount"`
	StartDate    string `json:"start_date"`
}
