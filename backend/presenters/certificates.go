package presenters

import (
	"context"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

type CertificateView struct {
	ID             string    `json:"id"`
	CourseID       string    `json:"courseId"`
	CourseSlug     string    `json:"courseSlug"`
	CourseTitle    string    `json:"courseTitle"`
	InstructorName string    `json:"instructorName"`
	StudentName    string    `json:"studentName"`
	CredentialID   string    `json:"credentialId"`
	IssuedAt       time.Time `json:"issuedAt"`
}

type CertificateList struct {
	Items []CertificateView `json:"items"`
	Count int               `json:"count"`
}

// CertificatesPresenter lists and opens a student's certificates.
type CertificatesPresenter struct {
	base
}

// List returns the student's certificates, newest first. Names come from the
// certificate itself; only the course slug is looked up and is empty when
// the course is gone.
func (p *CertificatesPresenter) List(ctx context.Context, studentID string) (CertificateList, error) {
	own, err := p.owned(ctx, studentID)
	if err != nil {
		return CertificateList{}, err
	}
	slugs, err := p.courseSlugs(ctx)
	if err != nil {
		return CertificateList{}, err
	}
	own = query.SortStable(own, newestFirst(func(c models.Certificate) time.Time { return c.IssuedAt }))

	items := make([]CertificateView, 0, len(own))
	for _, c := range own {
		items = append(items, certificateView(c, slugs))
	}
	return CertificateList{Items: items, Count: len(items)}, nil
}

// Get returns one certificate. A certificate owned by someone else is
// reported as not found.
func (p *CertificatesPresenter) Get(ctx context.Context, studentID, certificateID string) (CertificateView, error) {
	own, err := p.owned(ctx, studentID)
	if err != nil {
		return CertificateView{}, err
	}
	cert, ok := store.GetByID(own, certificateID)
	if !ok {
		return CertificateView{}, notFound("certificate", certificateID)
	}
	slugs, err := p.courseSlugs(ctx)
	if err != nil {
		return CertificateView{}, err
	}
	return certificateView(cert, slugs), nil
}

func (p *CertificatesPresenter) owned(ctx context.Context, studentID string) ([]models.Certificate, error) {
	if _, err := p.findStudent(ctx, studentID); err != nil {
		return nil, err
	}
	certificates, err := p.store.Certificates(ctx)
	if err != nil {
		return nil, err
	}
	return store.GetAllWhere(certificates, func(c models.Certificate) bool { return c.StudentID == studentID }), nil
}

func (p *CertificatesPresenter) courseSlugs(ctx context.Context) (*query.Lookup[models.Course], error) {
	courses, err := p.store.Courses(ctx)
	if err != nil {
		return nil, err
	}
	return query.NewLookup(courses, byID[models.Course], query.UseDefault, models.Course{}), nil
}

func certificateView(c models.Certificate, courses *query.Lookup[models.Course]) CertificateView {
	course, _ := courses.Get(c.CourseID)
	return CertificateView{
		ID:             c.ID,
		CourseID:       c.CourseID,
		CourseSlug:     course.Slug,
		CourseTitle:    c.CourseTitle,
		InstructorName: c.InstructorName,
		StudentName:    c.StudentName,
		CredentialID:   c.CredentialID,
		IssuedAt:       c.IssuedAt,
	}
}
