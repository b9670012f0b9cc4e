package notification

// SplitDTO mirrors SplitInfo on the wire.
type SplitDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount string `json:"amount"`
}

// GroupDTO mirrors GroupInfo on the wire.
type GroupDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Members        []string `json:"members"`
	PendingInvites []string `json:"pending_invites,omitempty"`
}

// SplitEventRequest triggers a split lifecycle notification.
type SplitEventRequest struct {
	Action     string   `json:"action"` // created, updated, deleted
	Split      SplitDTO `json:"split"`
	Group      GroupDTO `json:"group"`
	ActorName  string   `json:"actor_name"`
	ActorEmail string   `json:"actor_email"`
}

// GroupEventRequest triggers a group lifecycle notification.
type GroupEventRequest struct {
	Action     string   `json:"action"` // created, updated, deleted
	Group      GroupDTO `json:"group"`
	ActorName  string   `json:"actor_name"`
	ActorEmail string   `json:"actor_email"`
}

// MemberEventRequest triggers a joined/left notification.
type MemberEventRequest struct {
	Action     string   `json:"action"` // joined, left
	Group      GroupDTO `json:"group"`
	ActorName  string   `json:"actor_name"`
	ActorEmail string   `json:"actor_email"`
}

// InviteEventRequest triggers a split-invite notification to one invitee.
type InviteEventRequest struct {
	Group        GroupDTO `json:"group"`
	InviterName  string   `json:"inviter_name"`
	InviteeEmail string   `json:"invitee_email"`
}

// SettlementEventRequest triggers a settlement notification.
type SettlementEventRequest struct {
	Group      GroupDTO `json:"group"`
	Amount     string   `json:"amount"`
	ActorName  string   `json:"actor_name"`
	ActorEmail string   `json:"actor_email"`
}

// DirectEventRequest triggers a single-recipient notification (reminder,
// fun, achievement, test).
type DirectEventRequest struct {
	Recipient string `json:"recipient"`
	Topic     string `json:"topic,omitempty"`
	Context   string `json:"context,omitempty"`
	Milestone string `json:"milestone,omitempty"`
}

func (g GroupDTO) toInfo() GroupInfo {
	return GroupInfo{
		ID:             g.ID,
		Name:           g.Name,
		Members:        g.Members,
		PendingInvites: g.PendingInvites,
	}
}

func (s SplitDTO) toInfo() SplitInfo {
	return SplitInfo{ID: s.ID, Title: s.Title, Amount: s.Amount}
}
