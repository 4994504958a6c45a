package handlers

import (
	"fmt"
	"time"

	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
)

// dateLayout is the wire format for calendar dates. Times of day are never
// exchanged; expiry math works on whole days.
const dateLayout = "2006-01-02"

type employeeRequest struct {
	Name          string `json:"name"`
	Registration  string `json:"registration"`
	JobTitle      string `json:"job_title"`
	Department    string `json:"department"`
	AdmissionDate string `json:"admission_date"`
	Status        string `json:"status"`
}

type employeeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Registration  string `json:"registration"`
	JobTitle      string `json:"job_title"`
	Department    string `json:"department"`
	AdmissionDate string `json:"admission_date,omitempty"`
	Status        string `json:"status"`
}

func (r *employeeRequest) toModel() (*models.Employee, error) {
	admission, err := parseDate(r.AdmissionDate)
	if err != nil {
		return nil, err
	}
	employee := &models.Employee{
		Name:         r.Name,
		Registration: r.Registration,
		JobTitle:     r.JobTitle,
		Department:   r.Department,
		Status:       models.EmployeeStatus(r.Status),
	}
	if admission != nil {
		employee.AdmissionDate = *admission
	}
	return employee, nil
}

func (r *employeeRequest) toUpdate(id uuid.UUID) (*models.EmployeeUpdate, error) {
	admission, err := parseDate(r.AdmissionDate)
	if err != nil {
		return nil, err
	}
	update := &models.EmployeeUpdate{
		ID:            id,
		Name:          &r.Name,
		Registration:  &r.Registration,
		JobTitle:      &r.JobTitle,
		Department:    &r.Department,
		AdmissionDate: admission,
	}
	if r.Status != "" {
		status := models.EmployeeStatus(r.Status)
		update.Status = &status
	}
	return update, nil
}

func employeeToResponse(employee *models.Employee) employeeResponse {
	return employeeResponse{
		ID:            employee.ID.String(),
		Name:          employee.Name,
		Registration:  employee.Registration,
		JobTitle:      employee.JobTitle,
		Department:    employee.Department,
		AdmissionDate: formatDate(employee.AdmissionDate),
		Status:        string(employee.Status),
	}
}

type certificateRequest struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	IssueDate  string `json:"issue_date"`
	Physician  string `json:"physician"`
	License    string `json:"license"`
	Notes      string `json:"notes"`
}

type certificateResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Category     string `json:"category"`
	IssueDate    string `json:"issue_date"`
	ExpiryDate   string `json:"expiry_date"`
	Physician    string `json:"physician,omitempty"`
	License      string `json:"license,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
	OriginalID   string `json:"original_id,omitempty"`
}

func (r *certificateRequest) toModel() (*models.Certificate, error) {
	cert := &models.Certificate{
		Category:  models.CertificateCategory(r.Category),
		Physician: r.Physician,
		License:   r.License,
		Notes:     r.Notes,
	}
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid certificate id")
		}
		cert.ID = id
	}
	if r.EmployeeID != "" {
		employeeID, err := uuid.Parse(r.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("invalid employee id")
		}
		cert.EmployeeID = employeeID
	}
	issue, err := parseDate(r.IssueDate)
	if err != nil {
		return nil, err
	}
	if issue != nil {
		cert.IssueDate = *issue
	}
	return cert, nil
}

func certificateToResponse(cert *models.Certificate) certificateResponse {
	return certificateResponse{
		ID:           cert.ID.String(),
		EmployeeID:   cert.EmployeeID.String(),
		EmployeeName: cert.EmployeeName,
		Category:     string(cert.Category),
		IssueDate:    formatDate(cert.IssueDate),
		ExpiryDate:   formatDate(cert.ExpiryDate),
		Physician:    cert.Physician,
		License:      cert.License,
		Notes:        cert.Notes,
		Status:       string(cert.Status),
	}
}

func archivedToResponse(cert *models.ArchivedCertificate) certificateResponse {
	return certificateResponse{
		ID:           cert.ID.String(),
		EmployeeID:   cert.EmployeeID.String(),
		EmployeeName: cert.EmployeeName,
		Category:     string(cert.Category),
		IssueDate:    formatDate(cert.IssueDate),
		ExpiryDate:   formatDate(cert.ExpiryDate),
		Physician:    cert.Physician,
		License:      cert.License,
		Notes:        cert.Notes,
		Status:       string(cert.Status),
		OriginalID:   cert.OriginalID.String(),
	}
}

type trainingRequest struct {
	ID             string `json:"id,omitempty"`
	EmployeeID     string `json:"employee_id"`
	Regulation     string `json:"regulation"`
	Description    string `json:"description"`
	CompletionDate string `json:"completion_date"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	Institution    string `json:"institution"`
	Hours          int    `json:"hours"`
	Notes          string `json:"notes"`
}

type trainingResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	Regulation     string `json:"regulation"`
	Description    string `json:"description,omitempty"`
	CompletionDate string `json:"completion_date"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Hours          int    `json:"hours,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func (r *trainingRequest) toModel() (*models.Training, error) {
	training := &models.Training{
		Regulation:  r.Regulation,
		Description: r.Description,
		Institution: r.Institution,
		Hours:       r.Hours,
		Notes:       r.Notes,
	}
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid training id")
		}
		training.ID = id
	}
	if r.EmployeeID != "" {
		employeeID, err := uuid.Parse(r.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("invalid employee id")
		}
		training.EmployeeID = employeeID
	}
	completion, err := parseDate(r.CompletionDate)
	if err != nil {
		return nil, err
	}
	if completion != nil {
		training.CompletionDate = *completion
	}
	training.ExpiryDate, err = parseDate(r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return training, nil
}

func trainingToResponse(training *models.Training) trainingResponse {
	resp := trainingResponse{
		ID:             training.ID.String(),
		EmployeeID:     training.EmployeeID.String(),
		EmployeeName:   training.EmployeeName,
		Regulation:     training.Regulation,
		Description:    training.Description,
		CompletionDate: formatDate(training.CompletionDate),
		Institution:    training.Institution,
		Hours:          training.Hours,
		Notes:          training.Notes,
	}
	if training.ExpiryDate != nil {
		resp.ExpiryDate = formatDate(*training.ExpiryDate)
	}
	return resp
}

type equipmentRequest struct {
	ID             string `json:"id,omitempty"`
	EmployeeID     string `json:"employee_id"`
	Name           string `json:"name"`
	ApprovalNumber string `json:"approval_number"`
	DeliveryDate   string `json:"delivery_date"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	Quantity       int    `json:"quantity"`
	Notes          string `json:"notes"`
}

type equipmentResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	Name           string `json:"name"`
	ApprovalNumber string `json:"approval_number,omitempty"`
	DeliveryDate   string `json:"delivery_date"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	Quantity       int    `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

func (r *equipmentRequest) toModel() (*models.Equipment, error) {
	equipment := &models.Equipment{
		Name:           r.Name,
		ApprovalNumber: r.ApprovalNumber,
		Quantity:       r.Quantity,
		Notes:          r.Notes,
	}
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid equipment id")
		}
		equipment.ID = id
	}
	if r.EmployeeID != "" {
		employeeID, err := uuid.Parse(r.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("invalid employee id")
		}
		equipment.EmployeeID = employeeID
	}
	delivery, err := parseDate(r.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if delivery != nil {
		equipment.DeliveryDate = *delivery
	}
	equipment.ExpiryDate, err = parseDate(r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func equipmentToResponse(equipment *models.Equipment) equipmentResponse {
	resp := equipmentResponse{
		ID:             equipment.ID.String(),
		EmployeeID:     equipment.EmployeeID.String(),
		EmployeeName:   equipment.EmployeeName,
		Name:           equipment.Name,
		ApprovalNumber: equipment.ApprovalNumber,
		DeliveryDate:   formatDate(equipment.DeliveryDate),
		Quantity:       equipment.Quantity,
		Notes:          equipment.Notes,
	}
	if equipment.ExpiryDate != nil {
		resp.ExpiryDate = formatDate(*equipment.ExpiryDate)
	}
	return resp
}

type companyRequest struct {
	Name   string `json:"name"`
	TaxID  string `json:"tax_id"`
	Plan   string `json:"plan"`
	Active *bool  `json:"active,omitempty"`
}

type companyResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TaxID         string `json:"tax_id,omitempty"`
	Plan          string `json:"plan"`
	PaymentStatus string `json:"payment_status"`
	NextDueDate   string `json:"next_due_date,omitempty"`
	Active        bool   `json:"active"`
}

func companyToResponse(company *models.Company) companyResponse {
	resp := companyResponse{
		ID:            company.ID.String(),
		Name:          company.Name,
		TaxID:         company.TaxID,
		Plan:          company.Plan,
		PaymentStatus: string(company.PaymentStatus),
		Active:        company.Active,
	}
	if company.NextDueDate != nil {
		resp.NextDueDate = formatDate(*company.NextDueDate)
	}
	return resp
}

// parseDate parses an optional wire date. Empty input yields nil.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return &parsed, nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dateLayout)
}
