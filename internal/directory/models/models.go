// Package models holds the read models of students, vendors and products that
// verification consults. They are owned by other services.
package models

import (
	id "campuspass/pkg/domain"
)

type Student struct {
	ID           id.StudentID
	UniversityID id.UniversityID
	Email        string
	Phone        string
	Active       bool
}

type Vendor struct {
	ID     id.VendorID
	Name   string
	Active bool
	// APIKeyHash is a bcrypt hash of the vendor's widget API key.
	APIKeyHash string
}

type Product struct {
	ID       id.ProductID
	VendorID id.VendorID
	Name     string
}

// BelongsTo reports whether the product is sold by vendorID.
func (p *Product) BelongsTo(vendorID id.VendorID) bool {
	return p.VendorID == vendorID
}
