// Package checkin decides how an appointment can be paid at check-in and
// drives the payment form that closes it out.
//
// The decision is a pure function of the appointment snapshot, its optional
// service-package context, and loyalty-bonus eligibility. It is re-derived
// whole on every input change rather than mutated incrementally.
package checkin

import "fmt"

// PaymentType identifies a payment method accepted at check-in.
type PaymentType string

const (
	PaymentPix        PaymentType = "pix"
	PaymentCreditCard PaymentType = "credit_card"
	PaymentDebitCard  PaymentType = "debit_card"
	PaymentCash       PaymentType = "cash"
	PaymentOther      PaymentType = "other"
	PaymentLoyalty    PaymentType = "loyalty"
	PaymentPackage    PaymentType = "package"
)

// PackageInfo is the service-package context of an appointment.
type PackageInfo struct {
	Name              string
	PriceCents        int64
	Paid              bool
	RemainingSessions int
	TotalSessions     int
}

// Appointment is the read-only snapshot the engine decides over.
type Appointment struct {
	ID                string
	Status            string
	CustomerID        string
	Customer          string
	ServiceID         string
	ServicePriceCents int64
	Professional      string
	Package           *PackageInfo
}

// Bonus is the loyalty snapshot for the appointment's customer and service.
type Bonus struct {
	HasBonus      bool
	CurrentPoints int
}

// Input bundles everything the decision depends on.
type Input struct {
	Appointment Appointment
	Bonus       Bonus
}

// FirstPackageSession reports whether this appointment is the first session
// of a package that has not been paid yet. The package's full price is
// charged at this session.
func (in Input) FirstPackageSession() bool {
	return in.Appointment.Package != nil && !in.Appointment.Package.Paid
}

// Decision is the resolved payment form state: which methods are legal and
// what the form starts out with. Transient; discarded when the dialog closes.
type Decision struct {
	Allowed      []PaymentType
	Type         PaymentType
	AmountCents  int64
	Notes        string
	TypeLocked   bool
	AmountLocked bool
}

// Allows reports whether the payment type is legal under this decision.
func (d Decision) Allows(pt PaymentType) bool {
	for _, allowed := range d.Allowed {
		if allowed == pt {
			return true
		}
	}
	return false
}

// Resolve computes the decision for the given snapshot.
//
//	no package            -> standard methods (+loyalty if eligible), pix, service price
//	package, first session -> same methods minus "package", pix, package price
//	package, already paid  -> "package" only, amount 0, both fields locked
func Resolve(in Input) Decision {
	pkg := in.Appointment.Package

	if pkg != nil && pkg.Paid {
		return Decision{
			Allowed:      []PaymentType{PaymentPackage},
			Type:         PaymentPackage,
			AmountCents:  0,
			Notes:        paidPackageNote(pkg.Name),
			TypeLocked:   true,
			AmountLocked: true,
		}
	}

	allowed := []PaymentType{PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentOther}
	if in.Bonus.HasBonus {
		allowed = append(allowed, PaymentLoyalty)
	}

	if pkg != nil {
		return Decision{
			Allowed:     allowed,
			Type:        PaymentPix,
			AmountCents: pkg.PriceCents,
			Notes:       firstSessionNote(pkg.Name),
		}
	}

	return Decision{
		Allowed:     allowed,
		Type:        PaymentPix,
		AmountCents: in.Appointment.ServicePriceCents,
		Notes:       "",
	}
}

// ApplySelection returns the decision after the user picks a payment method.
// Picking a method outside the allowed set, or while the type is locked,
// leaves the decision unchanged.
func ApplySelection(in Input, d Decision, selected PaymentType) Decision {
	if d.TypeLocked || !d.Allows(selected) {
		return d
	}

	out := d
	out.Type = selected

	switch selected {
	case PaymentLoyalty:
		out.AmountCents = 0
		out.Notes = loyaltyNote(in.Bonus.CurrentPoints)
	case PaymentPackage:
		// The package row itself carries the amount semantics.
	default:
		if in.FirstPackageSession() {
			out.AmountCents = in.Appointment.Package.PriceCents
			out.Notes = firstSessionNote(in.Appointment.Package.Name)
		} else {
			out.AmountCents = in.Appointment.ServicePriceCents
			out.Notes = ""
		}
	}
	return out
}

func firstSessionNote(packageName string) string {
	return fmt.Sprintf("Payment for package '%s' - first session", packageName)
}

func paidPackageNote(packageName string) string {
	return fmt.Sprintf("Payment via package '%s'", packageName)
}

func loyaltyNote(points int) string {
	return fmt.Sprintf("Payment via loyalty - %d points available", points)
}
