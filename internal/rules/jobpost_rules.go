// Package rules holds the cross-field business rules for job posts: the
// conditional field requirements keyed by (postType, category, ladderType)
// and the equipment-length whitelist. Structural per-field validation lives
// in internal/validator; this layer is the source of truth for required-ness.
package rules

import (
	"fmt"
	"regexp"

	"laddercall_backend/internal/models"
	"laddercall_backend/pkg/apperrors"
)

// Candidate is the fully-assembled job-post payload under evaluation.
// Optional fields are pointers so "absent" and "zero" stay distinguishable.
type Candidate struct {
	PostType         models.PostType
	Category         models.Category
	LadderType       *models.LadderType
	CommunityID      *uint
	DesignatedUserID *uint

	EquipmentType    *string
	EquipmentLengths []int

	LuggageVolume *string
	WorkFloor     *int
	OverallHeight *float64

	ArrivalTime        *string
	WorkSchedule       *string
	LadderWorkDuration *string

	WorkCost            *int
	WithFee             *bool
	PaymentMethod       *models.PaymentMethod
	ExpectedPaymentDate *string

	SiteAddress   *string
	ContactNumber *string
	WorkContents  *string
	DeliveryInfo  *string
}

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type condition func(c *Candidate) bool

// rule is one independently-evaluated business rule. check returns nil when
// the rule holds.
type rule struct {
	when  condition
	check func(c *Candidate) *apperrors.FieldError
}

func always(*Candidate) bool { return true }

func isCommunity(c *Candidate) bool  { return c.PostType == models.PostTypeCommunity }
func isDesignated(c *Candidate) bool { return c.PostType == models.PostTypeDesignated }
func isSky(c *Candidate) bool        { return c.Category == models.CategorySky }
func isLadder(c *Candidate) bool     { return c.Category == models.CategoryLadder }

func isOnSite(c *Candidate) bool {
	return isLadder(c) && c.LadderType != nil && *c.LadderType == models.LadderTypeOnSite
}

// workContentsRequired covers every combination except
// (GLOBAL|DESIGNATED) x LADDER x MOVING_GOODS, where workContents is optional.
func workContentsRequired(c *Candidate) bool {
	if !isLadder(c) {
		return false
	}
	if c.LadderType != nil && *c.LadderType == models.LadderTypeMovingGoods && !isCommunity(c) {
		return false
	}
	return true
}

func required(field string, when condition, present func(c *Candidate) bool) rule {
	return rule{
		when: when,
		check: func(c *Candidate) *apperrors.FieldError {
			if present(c) {
				return nil
			}
			return &apperrors.FieldError{Field: field, Message: "This field is required"}
		},
	}
}

// jobPostRules is the declarative rule table. Every rule evaluates against
// the full candidate (no short-circuit) so a single request surfaces all of
// its violations at once; order here is the order of the reported list.
var jobPostRules = []rule{
	// Scope requirements
	required("communityId", isCommunity, func(c *Candidate) bool { return c.CommunityID != nil }),
	required("withFee", isCommunity, func(c *Candidate) bool { return c.WithFee != nil }),
	required("designatedUserId", isDesignated, func(c *Candidate) bool { return c.DesignatedUserID != nil }),

	// Scope exclusivity: a target reference is only ever valid for the scope
	// that requires it, so the two can never both be set.
	{
		when: func(c *Candidate) bool { return !isCommunity(c) },
		check: func(c *Candidate) *apperrors.FieldError {
			if c.CommunityID == nil {
				return nil
			}
			return &apperrors.FieldError{Field: "communityId", Message: "Only allowed for COMMUNITY posts"}
		},
	},
	{
		when: func(c *Candidate) bool { return !isDesignated(c) },
		check: func(c *Candidate) *apperrors.FieldError {
			if c.DesignatedUserID == nil {
				return nil
			}
			return &apperrors.FieldError{Field: "designatedUserId", Message: "Only allowed for DESIGNATED posts"}
		},
	},

	// SKY payload
	{when: isSky, check: checkEquipmentType},
	{when: isSky, check: checkEquipmentLengths},
	{when: always, check: checkArrivalTime},

	// LADDER payload
	required("ladderType", isLadder, func(c *Candidate) bool { return c.LadderType != nil }),
	required("luggageVolume", isLadder, func(c *Candidate) bool { return c.LuggageVolume != nil }),
	required("workFloor", isLadder, func(c *Candidate) bool { return c.WorkFloor != nil }),
	required("overallHeight", isLadder, func(c *Candidate) bool { return c.OverallHeight != nil }),
	required("workSchedule", isOnSite, func(c *Candidate) bool { return c.WorkSchedule != nil }),
	required("ladderWorkDuration", isOnSite, func(c *Candidate) bool { return c.LadderWorkDuration != nil }),
	required("workContents", workContentsRequired, func(c *Candidate) bool { return c.WorkContents != nil }),

	// LADDER unconditional fields, regardless of ladderType
	{when: isLadder, check: checkWorkCost},
	required("paymentMethod", isLadder, func(c *Candidate) bool { return c.PaymentMethod != nil }),
	required("expectedPaymentDate", isLadder, func(c *Candidate) bool { return c.ExpectedPaymentDate != nil }),
	required("withFee", isLadder, func(c *Candidate) bool { return c.WithFee != nil }),
	required("siteAddress", isLadder, func(c *Candidate) bool { return c.SiteAddress != nil }),
	required("contactNumber", isLadder, func(c *Candidate) bool { return c.ContactNumber != nil }),
	required("deliveryInfo", isLadder, func(c *Candidate) bool { return c.DeliveryInfo != nil }),
}

func checkEquipmentType(c *Candidate) *apperrors.FieldError {
	if c.EquipmentType == nil {
		return &apperrors.FieldError{Field: "equipmentType", Message: "This field is required"}
	}
	if _, ok := AllowedLengths(*c.EquipmentType); !ok {
		return &apperrors.FieldError{
			Field:   "equipmentType",
			Message: fmt.Sprintf("Unknown equipment type %q", *c.EquipmentType),
		}
	}
	return nil
}

func checkEquipmentLengths(c *Candidate) *apperrors.FieldError {
	if len(c.EquipmentLengths) == 0 {
		return &apperrors.FieldError{Field: "equipmentLengths", Message: "At least one equipment length is required"}
	}
	if c.EquipmentType == nil {
		// Reported against equipmentType already.
		return nil
	}
	allowed, ok := AllowedLengths(*c.EquipmentType)
	if !ok {
		return nil
	}
	for _, length := range c.EquipmentLengths {
		if !isAllowedLength(*c.EquipmentType, length) {
			return &apperrors.FieldError{
				Field: "equipmentLengths",
				Message: fmt.Sprintf("Length %d is not valid for equipment type %q; allowed lengths are %v",
					length, *c.EquipmentType, allowed),
			}
		}
	}
	return nil
}

func checkArrivalTime(c *Candidate) *apperrors.FieldError {
	if c.ArrivalTime == nil {
		return nil
	}
	if !hhmmPattern.MatchString(*c.ArrivalTime) {
		return &apperrors.FieldError{Field: "arrivalTime", Message: "Must be a 24-hour time in HH:MM format"}
	}
	return nil
}

func checkWorkCost(c *Candidate) *apperrors.FieldError {
	if c.WorkCost == nil {
		return &apperrors.FieldError{Field: "workCost", Message: "This field is required"}
	}
	if *c.WorkCost < 0 {
		return &apperrors.FieldError{Field: "workCost", Message: "Must be zero or greater"}
	}
	return nil
}

// Evaluate runs every applicable rule and returns the ordered list of
// violations, or nil when the candidate passes. A field that fails under two
// overlapping rules (withFee on a COMMUNITY LADDER post) is reported once.
func Evaluate(c *Candidate) []apperrors.FieldError {
	var violations []apperrors.FieldError
	seen := make(map[string]bool)
	for _, r := range jobPostRules {
		if !r.when(c) {
			continue
		}
		fe := r.check(c)
		if fe == nil || seen[fe.Field+"\x00"+fe.Message] {
			continue
		}
		seen[fe.Field+"\x00"+fe.Message] = true
		violations = append(violations, *fe)
	}
	return violations
}
