package entities

import (
	"strconv"
	"strings"
)

// ActionKind tags a decoded button payload
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionContactSupport
	ActionCheckStatus
	ActionHelp
	ActionApprove
	ActionReject
)

const (
	payloadContactSupport = "contact_support"
	payloadCheckStatus    = "check_status"
	payloadHelp           = "help"
	payloadApprovePrefix  = "admin_approve_"
	payloadRejectPrefix   = "admin_reject_"
)

// Action is a button press decoded once at the transport boundary
type Action struct {
	Kind     ActionKind
	TargetID int64
}

// ParseAction decodes a callback payload. Malformed payloads decode to ActionUnknown.
func ParseAction(payload string) Action {
	switch payload {
	case payloadContactSupport:
		return Action{Kind: ActionContactSupport}
	case payloadCheckStatus:
		return Action{Kind: ActionCheckStatus}
	case payloadHelp:
		return Action{Kind: ActionHelp}
	}

	for prefix, kind := range map[string]ActionKind{
		payloadApprovePrefix: ActionApprove,
		payloadRejectPrefix:  ActionReject,
	} {
		if rest, ok := strings.CutPrefix(payload, prefix); ok {
			id, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return Action{}
			}
			return Action{Kind: kind, TargetID: id}
		}
	}
	return Action{}
}

// Payload encodes the action for a button.
func (a Action) Payload() string {
	switch a.Kind {
	case ActionContactSupport:
		return payloadContactSupport
	case ActionCheckStatus:
		return payloadCheckStatus
	case ActionHelp:
		return payloadHelp
	case ActionApprove:
		return payloadApprovePrefix + strconv.FormatInt(a.TargetID, 10)
	case ActionReject:
		return payloadRejectPrefix + strconv.FormatInt(a.TargetID, 10)
	}
	return ""
}

// IsDecision reports whether the action is a reviewer approve/reject.
func (a Action) IsDecision() bool {
	return a.Kind == ActionApprove || a.Kind == ActionReject
}
