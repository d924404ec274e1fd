package main

import (
	"log/slog"

	"github.com/google/uuid"

	dirmodels "campuspass/internal/directory/models"
	dirservice "campuspass/internal/directory/service"
	dirstore "campuspass/internal/directory/store"
	unimodels "campuspass/internal/university/models"
	unistore "campuspass/internal/university/store"
	vmodels "campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
)

// Demo fixtures for local runs and the e2e suite. Fixed IDs keep feature files stable.
var (
	demoUniversityID = id.UniversityID(uuid.MustParse("6f1d2a40-3c55-4b1e-9a51-000000000001"))
	demoStudentID    = id.StudentID(uuid.MustParse("6f1d2a40-3c55-4b1e-9a51-000000000002"))
	demoVendorID     = id.VendorID(uuid.MustParse("6f1d2a40-3c55-4b1e-9a51-000000000003"))
	demoProductID    = id.ProductID(uuid.MustParse("6f1d2a40-3c55-4b1e-9a51-000000000004"))
)

const (
	demoStudentEmail = "ada@unilag.edu.ng"
	demoStudentPhone = "+2348012345678"
	demoVendorAPIKey = "demo-vendor-key"
)

// seedDemoData loads one active university offering email, whatsapp and portal
// verification, one student and one vendor with a product.
func seedDemoData(universities *unistore.InMemory, directory *dirstore.InMemory, log *slog.Logger) error {
	keyHash, err := dirservice.HashAPIKey(demoVendorAPIKey)
	if err != nil {
		return err
	}

	universities.Put(&unimodels.University{
		ID:            demoUniversityID,
		Name:          "University of Lagos",
		PrimaryDomain: "unilag.edu.ng",
		Domains:       []string{"live.unilag.edu.ng"},
		Active:        true,
	})
	universities.PutMethodConfigs(demoUniversityID, []unimodels.MethodConfig{
		{UniversityID: demoUniversityID, Method: vmodels.MethodEmail, Active: true, Priority: 1},
		{UniversityID: demoUniversityID, Method: vmodels.MethodWhatsApp, Active: true, Priority: 2},
		{UniversityID: demoUniversityID, Method: vmodels.MethodRegistration, Active: false, Priority: 3},
		{UniversityID: demoUniversityID, Method: vmodels.MethodPortal, Active: true, Priority: 4},
	})

	directory.PutStudent(dirmodels.Student{
		ID:           demoStudentID,
		UniversityID: demoUniversityID,
		Email:        demoStudentEmail,
		Phone:        demoStudentPhone,
		Active:       true,
	})
	directory.PutVendor(dirmodels.Vendor{
		ID:         demoVendorID,
		Name:       "Campus Books",
		Active:     true,
		APIKeyHash: keyHash,
	})
	directory.PutProduct(dirmodels.Product{
		ID:       demoProductID,
		VendorID: demoVendorID,
		Name:     "Student bundle",
	})

	log.Info("seeded demo data",
		"university_id", demoUniversityID.String(),
		"student_id", demoStudentID.String(),
		"vendor_id", demoVendorID.String(),
	)
	return nil
}
