package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleProfile() Profile {
	p := NewProfile(NewUserID(uuid.New()), "maria_ds", "Maria Dos Santos", "maria_ds@gmail.com", time.Now())
	p.Resume = strPtr("https://www.hloom.com/sample.pdf")
	p.Education["0"] = Education{Degree: "Bachelor of Design", Institution: "University of Sao Paulo", Year: "2019"}
	p.Projects["0"] = Project{Title: "E-commerce Redesign", Image: strPtr("")}
	p.Contact.Phone = strPtr("0025612345678")
	return p
}

func TestNewProfileDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	p := NewProfile(NewUserID(uuid.New()), "maria_ds", "Maria", "m@x.io", now)

	assert.Equal(t, StatusMember, p.Status)
	assert.True(t, p.Active)
	assert.True(t, p.Visible)
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Experience)
	assert.NotNil(t, p.Projects)
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.True(t, p.CreatedAt.Equal(now))
}

func TestCloneSharesNothing(t *testing.T) {
	p := sampleProfile()
	c := p.Clone()
	require.True(t, p.Equal(c))

	c.Education["1"] = Education{Degree: "MSc"}
	*c.Resume = "changed"
	*c.Contact.Phone = "changed"
	img := c.Projects["0"].Image
	*img = "changed"

	assert.Len(t, p.Education, 1)
	assert.Equal(t, "https://www.hloom.com/sample.pdf", *p.Resume)
	assert.Equal(t, "0025612345678", *p.Contact.Phone)
	assert.Equal(t, "", *p.Projects["0"].Image)
	assert.False(t, p.Equal(c))
}

func TestEqualTreatsNilAndEmptyMapsAlike(t *testing.T) {
	p := sampleProfile()
	p.Experience = nil
	q := p.Clone()
	q.Experience = map[string]Experience{}
	assert.True(t, p.Equal(q))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusVisitor.Valid())
	assert.True(t, StatusMember.Valid())
	assert.False(t, Status("admin").Valid())
}
