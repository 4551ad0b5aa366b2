package session

import "github.com/gigit/web/internal/domain"

// ActionType enumerates auth state transitions.
type ActionType string

const (
	ActionInitial       ActionType = "INITIAL"
	ActionLogin         ActionType = "LOGIN"
	ActionSignUp        ActionType = "SIGNUP"
	ActionLogout        ActionType = "LOGOUT"
	ActionUpdateProfile ActionType = "UPDATEPROFILE"
	ActionDeleteProfile ActionType = "DELETEPROFILE"
)

// State is the client-held record of the authenticated user.
type State struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsInitialized   bool         `json:"isInitialized"`
}

// Action is an explicit transition request. User is the payload of LOGIN and
// SIGNUP, Patch the payload of UPDATEPROFILE.
type Action struct {
	Type  ActionType
	User  *domain.User
	Patch *domain.ProfilePatch
}

// Login builds a LOGIN action.
func Login(u domain.User) Action { return Action{Type: ActionLogin, User: &u} }

// SignUp builds a SIGNUP action.
func SignUp(u domain.User) Action { return Action{Type: ActionSignUp, User: &u} }

// UpdateProfile builds an UPDATEPROFILE action.
func UpdateProfile(p domain.ProfilePatch) Action {
	return Action{Type: ActionUpdateProfile, Patch: &p}
}

// Reduce maps (state, action) to the next state. It never fails and never
// shares the user pointer of its inputs with the result.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionInitial:
		state.IsInitialized = true
	case ActionLogin, ActionSignUp:
		state.User = cloneUser(action.User)
		state.IsAuthenticated = true
	case ActionLogout:
		state.User = nil
		state.IsAuthenticated = false
	case ActionUpdateProfile:
		if state.User == nil || action.Patch == nil {
			return state
		}
		merged := action.Patch.Apply(*state.User)
		state.User = &merged
	case ActionDeleteProfile:
		if state.User == nil {
			return state
		}
		// IsAuthenticated is retained. Whether deletion should also sign the
		// session out is still an open product question.
		state.User = nil
	}
	return state
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Skills != nil {
		c.Skills = append([]domain.Skill(nil), u.Skills...)
	}
	if u.Verified != nil {
		v := *u.Verified
		c.Verified = &v
	}
	return &c
}
