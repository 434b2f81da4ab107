package storage

import "time"

type NominationStatus string

const (
	NominationPending  NominationStatus = "pending"
	NominationApproved NominationStatus = "approved"
	NominationRejected NominationStatus = "rejected"
)

type VoteType string

const (
	VoteFor     VoteType = "for"
	VoteAgainst VoteType = "against"
	VoteAbstain VoteType = "abstain"
)

const (
	AddedByAdmin      = "admin"
	AddedByNomination = "nomination"
)

type Person struct {
	ID          string    `dynamodbav:"PK" gorm:"primaryKey;size:32" json:"id"`
	Name        string    `dynamodbav:"Name" gorm:"not null" json:"name"`
	Description string    `dynamodbav:"Description" json:"description,omitempty"`
	Points      int       `dynamodbav:"Points" gorm:"not null;default:0" json:"points"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt" json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"UpdatedAt" json:"updated_at"`
}

func (Person) TableName() string { return "persons" }

// PersonPatch holds the fields of a partial person update; nil fields are left untouched.
type PersonPatch struct {
	Name        *string
	Description *string
	Points      *int
}

func (p PersonPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Points == nil
}

type Nomination struct {
	ID            string           `dynamodbav:"PK" gorm:"primaryKey;size:32" json:"id"`
	PersonID      string           `dynamodbav:"PersonID" gorm:"size:32;not null;index" json:"person_id"`
	NominatorName string           `dynamodbav:"NominatorName" gorm:"not null" json:"nominator_name"`
	Reason        string           `dynamodbav:"Reason" gorm:"type:text;not null" json:"reason"`
	Status        NominationStatus `dynamodbav:"Status" gorm:"size:16;not null;index" json:"status"`
	CreatedAt     time.Time        `dynamodbav:"CreatedAt" json:"created_at"`
	UpdatedAt     time.Time        `dynamodbav:"UpdatedAt" json:"updated_at"`

	// Person is only populated by list reads.
	Person *Person `dynamodbav:"-" gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
}

func (Nomination) TableName() string { return "nominations" }

type Vote struct {
	NominationID string    `dynamodbav:"PK" gorm:"size:32;not null;index" json:"nomination_id"`
	ID           string    `dynamodbav:"SK" gorm:"primaryKey;size:32" json:"id"`
	VoterName    string    `dynamodbav:"VoterName" gorm:"not null" json:"voter_name"`
	VoteType     VoteType  `dynamodbav:"VoteType" gorm:"size:16;not null" json:"vote_type"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt" json:"created_at"`

	Nomination *Nomination `dynamodbav:"-" gorm:"foreignKey:NominationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Vote) TableName() string { return "votes" }

// PointReason is one entry of a person's point ledger. Entries are never rewritten
// except to mark them void when a reversal entry cancels them out.
type PointReason struct {
	ID           string     `dynamodbav:"PK" gorm:"primaryKey;size:32" json:"id"`
	PersonID     string     `dynamodbav:"PersonID" gorm:"size:32;not null;index" json:"person_id"`
	PointsAdded  int        `dynamodbav:"PointsAdded" gorm:"not null" json:"points_added"`
	Reason       string     `dynamodbav:"Reason" gorm:"type:text;not null" json:"reason"`
	AddedBy      string     `dynamodbav:"AddedBy" gorm:"size:32;not null" json:"added_by"`
	NominationID *string    `dynamodbav:"NominationID,omitempty" gorm:"size:32;index" json:"nomination_id"`
	VoidedAt     *time.Time `dynamodbav:"VoidedAt,omitempty" json:"voided_at,omitempty"`
	VoidedByID   *string    `dynamodbav:"VoidedByID,omitempty" gorm:"size:32" json:"voided_by_id,omitempty"`
	CreatedAt    time.Time  `dynamodbav:"CreatedAt" json:"created_at"`

	Person *Person `dynamodbav:"-" gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PointReason) TableName() string { return "point_reasons" }

func (r *PointReason) Voided() bool { return r.VoidedAt != nil }

type Admin struct {
	Username     string    `dynamodbav:"PK" gorm:"size:64;uniqueIndex;not null" json:"username"`
	ID           string    `dynamodbav:"ID" gorm:"primaryKey;size:32" json:"id"`
	PasswordHash string    `dynamodbav:"PasswordHash" gorm:"not null" json:"-"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt" json:"created_at"`
}

func (Admin) TableName() string { return "admins" }
