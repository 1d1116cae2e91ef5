package domain

import "strings"

// MaxStatementDescriptorLength is the processor's limit for statement descriptors.
const MaxStatementDescriptorLength = 22

const (
	descriptorCredit        = "Payment Credit"
	descriptorSingleInvoice = "Invoice payment"
	descriptorMultiInvoice  = "Multi-invoice payment"
)

// StatementDescriptor builds the charge descriptor from the display codes of the
// invoices being paid. No codes means a credit deposit.
func StatementDescriptor(codes []string) string {
	switch len(codes) {
	case 0:
		return descriptorCredit
	case 1:
		desc := "Invoice " + codes[0]
		if len(desc) > MaxStatementDescriptorLength {
			return descriptorSingleInvoice
		}
		return desc
	default:
		desc := "Invoices " + strings.Join(codes, ", ")
		if len(desc) > MaxStatementDescriptorLength {
			return descriptorMultiInvoice
		}
		return desc
	}
}
