package models

type InvoiceStatus string

const (
	InvStatusDraft   InvoiceStatus = "draft"
	InvStatusPending InvoiceStatus = "pending"
	InvStatusPaid    InvoiceStatus = "paid"
	InvStatusOverdue InvoiceStatus = "overdue"
)

var invStatusHumanName = map[InvoiceStatus]string{
	InvStatusDraft:   "Draft",
	InvStatusPending: "Pending",
	InvStatusPaid:    "Paid",
	InvStatusOverdue: "Overdue",
}

func (s InvoiceStatus) ToHuman() string {
	if human, exist := invStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

var invAllowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvStatusDraft:   {InvStatusPending},
	InvStatusPending: {InvStatusPaid, InvStatusOverdue},
	InvStatusOverdue: {InvStatusPaid},
	InvStatusPaid:    {},
}

func (s InvoiceStatus) IsAllowChange(to InvoiceStatus) bool {
	for _, allowed := range invAllowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) IsEditable() bool {
	return s == InvStatusDraft
}
