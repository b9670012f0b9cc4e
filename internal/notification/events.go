package notification

import "fmt"

// SplitInfo is the slice of a split the builders need.
type SplitInfo struct {
	ID     string
	Title  string
	Amount string
}

// GroupInfo is the slice of a split group the builders need.
type GroupInfo struct {
	ID             string
	Name           string
	Members        []string
	PendingInvites []string
}

// GroupRecipients computes who should be notified for a group event:
// members (plus pending invites when includeInvites), deduplicated, with
// the acting user removed so people are not notified of their own actions.
func GroupRecipients(group GroupInfo, actor string, includeInvites bool) []string {
	all := make([]string, 0, len(group.Members)+len(group.PendingInvites))
	all = append(all, group.Members...)
	if includeInvites {
		all = append(all, group.PendingInvites...)
	}

	out := make([]string, 0, len(all))
	for _, email := range canonicalRecipients(all) {
		if email == actor {
			continue
		}
		out = append(out, email)
	}
	return out
}

// SplitCreated builds the payload for a newly created split.
func SplitCreated(split SplitInfo, group GroupInfo, creatorName string) Payload {
	return Payload{
		Kind:  KindSplitCreated,
		Title: "New Split Created! 💰",
		Body:  fmt.Sprintf("%s created a new split %q in %s", creatorName, split.Title, group.Name),
		Data: map[string]string{
			"type":       string(KindSplitCreated),
			"groupId":    group.ID,
			"splitId":    split.ID,
			"groupName":  group.Name,
			"splitTitle": split.Title,
			"amount":     split.Amount,
		},
		Icon:     "💰",
		Priority: PriorityHigh,
	}
}

// SplitUpdated builds the payload for an edited split.
func SplitUpdated(split SplitInfo, group GroupInfo, updaterName string) Payload {
	return Payload{
		Kind:  KindSplitUpdated,
		Title: "Split Updated! ✏️",
		Body:  fmt.Sprintf("%s updated the split %q in %s", updaterName, split.Title, group.Name),
		Data: map[string]string{
			"type":       string(KindSplitUpdated),
			"groupId":    group.ID,
			"splitId":    split.ID,
			"groupName":  group.Name,
			"splitTitle": split.Title,
			"amount":     split.Amount,
		},
		Icon:     "✏️",
		Priority: PriorityNormal,
	}
}

// SplitDeleted builds the payload for a removed split.
func SplitDeleted(split SplitInfo, group GroupInfo, deleterName string) Payload {
	return Payload{
		Kind:  KindSplitDeleted,
		Title: "Split Deleted! 🗑️",
		Body:  fmt.Sprintf("%s deleted the split %q from %s", deleterName, split.Title, group.Name),
		Data: map[string]string{
			"type":       string(KindSplitDeleted),
			"groupId":    group.ID,
			"splitId":    split.ID,
			"groupName":  group.Name,
			"splitTitle": split.Title,
			"amount":     split.Amount,
		},
		Icon:     "🗑️",
		Priority: PriorityHigh,
	}
}

// SplitInvite builds the payload inviting someone into a split group.
func SplitInvite(group GroupInfo, inviterName string) Payload {
	return Payload{
		Kind:  KindSplitInvite,
		Title: "You're Invited to a Split Group! 🎉",
		Body:  fmt.Sprintf("%s invited you to join %q split group", inviterName, group.Name),
		Data: map[string]string{
			"type":      string(KindSplitInvite),
			"groupId":   group.ID,
			"groupName": group.Name,
		},
		Icon:     "🎉",
		Priority: PriorityHigh,
	}
}

// SettlementMade builds the payload for a settlement inside a group.
func SettlementMade(group GroupInfo, amount, settlerName string) Payload {
	return Payload{
		Kind:  KindSettlement,
		Title: "Settlement Made! ✅",
		Body:  fmt.Sprintf("%s settled up ₹%s in %q", settlerName, amount, group.Name),
		Data: map[string]string{
			"type":      string(KindSettlement),
			"groupId":   group.ID,
			"groupName": group.Name,
			"amount":    amount,
		},
		Icon:     "✅",
		Priority: PriorityHigh,
	}
}

// GroupCreated builds the payload announcing a new group to its invitees.
func GroupCreated(group GroupInfo, creatorName string) Payload {
	return Payload{
		Kind:  KindGroupCreated,
		Title: "New Split Group Created! 🎉",
		Body:  fmt.Sprintf("%s created %q split group and invited you", creatorName, group.Name),
		Data: map[string]string{
			"type":      string(KindGroupCreated),
			"groupId":   group.ID,
			"groupName": group.Name,
		},
		Icon:     "🎉",
		Priority: PriorityHigh,
	}
}

// GroupUpdated builds the payload for group detail changes.
func GroupUpdated(group GroupInfo, updaterName string) Payload {
	return Payload{
		Kind:  KindGroupUpdated,
		Title: "Group Updated! ✏️",
		Body:  fmt.Sprintf("%s updated %q split group", updaterName, group.Name),
		Data: map[string]string{
			"type":      string(KindGroupUpdated),
			"groupId":   group.ID,
			"groupName": group.Name,
		},
		Icon:     "✏️",
		Priority: PriorityNormal,
	}
}

// GroupDeleted builds the payload for a deleted group.
func GroupDeleted(group GroupInfo, deleterName string) Payload {
	return Payload{
		Kind:  KindGroupDeleted,
		Title: "Group Deleted! 🗑️",
		Body:  fmt.Sprintf("%s deleted %q split group", deleterName, group.Name),
		Data: map[string]string{
			"type":      string(KindGroupDeleted),
			"groupId":   group.ID,
			"groupName": group.Name,
		},
		Icon:     "🗑️",
		Priority: PriorityNormal,
	}
}

// UserJoined builds the payload for a member joining a group.
func UserJoined(group GroupInfo, joinerName string) Payload {
	return Payload{
		Kind:  KindUserJoined,
		Title: "New Member Joined! 👋",
		Body:  fmt.Sprintf("%s joined %q split group", joinerName, group.Name),
		Data: map[string]string{
			"type":      string(KindUserJoined),
			"groupId":   group.ID,
			"groupName": group.Name,
		},
		Icon:     "👋",
		Priority: PriorityNormal,
	}
}

// UserLeft builds the payload for a member leaving a group.
func UserLeft(group GroupInfo, leaverName string) Payload {
	return Payload{
		Kind:  KindUserLeft,
		Title: "Member Left Group 👋",
		Body:  fmt.Sprintf("%s left %q split group", leaverName, group.Name),
		Data: map[string]string{
			"type":      string(KindUserLeft),
			"groupId":   group.ID,
			"groupName": group.Name,
		},
		Icon:     "👋",
		Priority: PriorityNormal,
	}
}

// TestNotification builds the payload used by the manual test-send
// endpoint.
func TestNotification() Payload {
	return Payload{
		Kind:     KindTest,
		Title:    "Test Notification 🔔",
		Body:     "Push delivery is working.",
		Data:     map[string]string{"type": string(KindTest)},
		Icon:     "🔔",
		Priority: PriorityNormal,
	}
}
