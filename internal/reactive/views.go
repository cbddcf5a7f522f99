package reactive

import "complaint-portal/internal/document"

type Session struct {
	Token string         `json:"token"`
	User  *document.User `json:"user"`
}

type ComplaintView struct {
	document.Complaint
	Category      *document.Category  `json:"category"`
	Responses     []document.Response `json:"responses"`
	AttachmentURL string              `json:"attachmentUrl,omitempty"`
	Submitter     string              `json:"submitter,omitempty"`
}

type OfficialView struct {
	document.Official
	Email        string `json:"email,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

type signUpArgs struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addOfficialArgs struct {
	Email      string `json:"email"`
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
}

type addCategoryArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AgencyEmail string `json:"agencyEmail"`
}

type createComplaintArgs struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CategoryID     string `json:"categoryId"`
	Location       string `json:"location"`
	AttachmentID   string `json:"attachmentId"`
	AttachmentName string `json:"attachmentName"`
}

type addResponseArgs struct {
	ComplaintID string `json:"complaintId"`
	Message     string `json:"message"`
}
