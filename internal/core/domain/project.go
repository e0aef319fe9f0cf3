package domain

import "time"

// ProjectStatusActive is the status assigned to newly created projects.
const ProjectStatusActive = "ACTIVE"

// Project groups tasks done for a client by a team of members.
//
// Invariant: the creating admin is always part of MemberIDs, even when the
// create request omitted them.
type Project struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Name        string     `json:"name" bson:"name"`
	Code        string     `json:"code" bson:"code"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      string     `json:"status" bson:"status"`
	StartDate   *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty" bson:"budget,omitempty"`
	ClientID    string     `json:"client_id" bson:"client_id"`
	MemberIDs   []string   `json:"member_ids" bson:"member_ids"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// HasMember reports whether the user belongs to the project's member set.
// Membership grants task and comment visibility.
func (p Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
