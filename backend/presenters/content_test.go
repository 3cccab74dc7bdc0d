package presenters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFAQGroups(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	faq, err := p.Content.FAQ(ctx, FAQQuery{})
	require.NoError(t, err)
	assert.Equal(t, 6, faq.Total)
	assert.Equal(t, []string{"General", "Payments", "Certificates", "Courses"}, faq.Categories)
	require.Len(t, faq.Groups, 4)
	assert.Equal(t, "General", faq.Groups[0].Category)
	require.Len(t, faq.Groups[0].Items, 2)
	assert.Equal(t, "faq-001", faq.Groups[0].Items[0].ID)
	assert.Equal(t, "faq-003", faq.Groups[0].Items[1].ID)

	refund, err := p.Content.FAQ(ctx, FAQQuery{Search: "Refund"})
	require.NoError(t, err)
	assert.Equal(t, 1, refund.Total)
	require.Len(t, refund.Groups, 1)
	assert.Equal(t, "faq-005", refund.Groups[0].Items[0].ID)
	// the category list is not narrowed by the search
	assert.Len(t, refund.Categories, 4)

	payments, err := p.Content.FAQ(ctx, FAQQuery{Category: "Payments"})
	require.NoError(t, err)
	require.Len(t, payments.Groups, 1)
	assert.Len(t, payments.Groups[0].Items, 2)

	none, err := p.Content.FAQ(ctx, FAQQuery{Search: "blockchain"})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Groups)
}

func TestAbout(t *testing.T) {
	p := testPresenters(t)

	about, err := p.Content.About(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlatformStats{
		Courses:       11,
		Students:      6,
		Instructors:   3,
		Enrollments:   14,
		Certificates:  5,
		Categories:    5,
		AverageRating: 4.6,
	}, about.Stats)
	assert.Len(t, about.Instructors, 3)
	assert.Len(t, about.Categories, 5)
}

func TestContact(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	res, err := p.Content.Contact(ctx, ContactRequest{
		Name:    "Jamie",
		Email:   "jamie@example.com",
		Subject: "Team plans",
		Message: "Do you offer plans for teams of ten?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.False(t, res.Persisted)

	_, err = p.Content.Contact(ctx, ContactRequest{Name: "Jamie", Email: "jamie@example.com", Subject: "Hi", Message: "   too short   "})
	requireInvalid(t, err, "message")
}
