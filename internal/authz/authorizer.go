package authz

import (
	"complaint-portal/internal/apperr"
)

type Operation int

const (
	UpdateComplaint Operation = iota + 1
	DeleteComplaint
	UpdateStatus
	ManageCategories
	AppointOfficial
	ListOfficials
	ViewCategoryComplaints
	Respond
	InspectOutbox
)

type Reason int

const (
	NoReason Reason = iota
	NotAuthenticated
	NotOwner
	InvalidStatus
	NotAdmin
	NotOfficial
	AlreadyOfficial
)

func (r Reason) String() string {
	switch r {
	case NotAuthenticated:
		return "NotAuthenticated"
	case NotOwner:
		return "NotOwner"
	case InvalidStatus:
		return "InvalidStatus"
	case NotAdmin:
		return "NotAdmin"
	case NotOfficial:
		return "NotOfficial"
	case AlreadyOfficial:
		return "AlreadyOfficial"
	default:
		return "None"
	}
}

// Resource holds the facts about the target that a decision needs. Only the
// fields relevant to the operation are read.
type Resource struct {
	SubmitterID      string
	CategoryID       string
	CategoryName     string
	Status           string
	AllowedStatuses  []string
	TargetIsOfficial bool
}

// Decision is the outcome of Decide. A denial carries the Reason and the
// message shown to the caller.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason Reason, msg string) Decision {
	return Decision{Reason: reason, Message: msg}
}

// Err converts a denial into the apperr kind clients see. It is nil when the
// decision allows the operation.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case NotAuthenticated:
		return apperr.Unauthenticated(d.Message)
	case InvalidStatus:
		return apperr.Validationf(d.Message)
	case AlreadyOfficial:
		return apperr.ConflictOf(d.Message)
	default:
		return apperr.Forbidden(d.Message)
	}
}

// Decide is a pure function of the identity, the operation and the resource.
func Decide(id *Identity, op Operation, res Resource) Decision {
	if id == nil || id.ID == "" {
		return deny(NotAuthenticated, "Not authenticated")
	}

	switch op {
	case UpdateComplaint:
		if res.SubmitterID != id.ID {
			return deny(NotOwner, "Unauthorized - You can only update your own complaints")
		}
		return allow()

	case DeleteComplaint:
		if res.SubmitterID != id.ID {
			return deny(NotOwner, "Unauthorized - You can only delete your own complaints")
		}
		return allow()

	case UpdateStatus:
		if !contains(res.AllowedStatuses, res.Status) {
			return deny(InvalidStatus, "Invalid status value")
		}
		if res.SubmitterID == id.ID || officiates(id, res) {
			return allow()
		}
		return deny(NotOwner, "Unauthorized - You can only change the status of your own complaints")

	case ManageCategories, ListOfficials, InspectOutbox:
		if !id.IsAdmin {
			return deny(NotAdmin, "Not authorized")
		}
		return allow()

	case AppointOfficial:
		if !id.IsAdmin {
			return deny(NotAdmin, "Not authorized")
		}
		if res.TargetIsOfficial {
			return deny(AlreadyOfficial, "User is already an official")
		}
		return allow()

	case ViewCategoryComplaints:
		if !id.IsOfficial() {
			return deny(NotOfficial, "Not an official")
		}
		return allow()

	case Respond:
		return allow()
	}

	return deny(NotAdmin, "Not authorized")
}

// officiates reports whether id is an official of the resource's category.
func officiates(id *Identity, res Resource) bool {
	if !id.IsOfficial() {
		return false
	}
	o := id.Official
	if o.CategoryID != "" && o.CategoryID == res.CategoryID {
		return true
	}
	return o.CategoryName != "" && o.CategoryName == res.CategoryName
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
