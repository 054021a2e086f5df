package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/view"
)

const (
	DialogEmail       = "email"
	DialogCallback    = "callback"
	DialogOutcome     = "outcome"
	DialogCreate      = "create"
	DialogValidateOTP = "validate-otp"
	DialogDeleteUser  = "delete-user"
)

var (
	ErrUnknownDialog = errors.New("unknown dialog")
	errNotVerified   = errors.New("OTP not verified")
)

// Users lists users from GET /users. Analytics reads /analytics/users on its
// own; the two are never merged.
type Users struct {
	api  backend.API
	opts Options
	st   *store[models.User]

	lookupMu sync.Mutex
	lookup   UserLookup
}

// UserLookup is the result of a single by-phone or by-name search.
type UserLookup struct {
	By      string       `json:"by,omitempty"`
	Key     string       `json:"key,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Err     string       `json:"error,omitempty"`
	Loading bool         `json:"loading"`
}

func NewUsers(api backend.API, opts Options) *Users {
	return &Users{api: api, opts: opts.named("users"), st: newStore[models.User]()}
}

func (p *Users) Snapshot() view.ListState[models.User] {
	return p.st.snapshot()
}

func (p *Users) Refresh(ctx context.Context, mode view.Mode) error {
	return load(ctx, p.st, p.opts, mode, "Failed to load users", func(ctx context.Context) ([]models.User, error) {
		res, err := p.api.ListUsers(ctx)
		return res.Items, err
	})
}

// Open opens the dialog of the given kind for phone. Create ignores phone.
func (p *Users) Open(kind, phone string) error {
	switch kind {
	case DialogEmail:
		p.OpenEmail(phone)
	case DialogCallback, DialogOutcome, DialogValidateOTP:
		p.open(view.Dialog{Kind: kind, Target: phone})
	case DialogCreate:
		p.OpenCreate()
	case DialogDeleteUser:
		p.RequestDelete(phone)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialog, kind)
	}
	return nil
}

// OpenEmail opens the email dialog pre-filled with the user's current email.
func (p *Users) OpenEmail(phone string) {
	current := ""
	for _, u := range p.st.snapshot().Items {
		if u.PhoneNumber == phone {
			current = u.Email
			break
		}
	}
	p.open(view.Dialog{Kind: DialogEmail, Target: phone, Value: current})
}

func (p *Users) OpenCallback(phone string) {
	p.open(view.Dialog{Kind: DialogCallback, Target: phone})
}

func (p *Users) OpenOutcome(phone string) {
	p.open(view.Dialog{Kind: DialogOutcome, Target: phone})
}

func (p *Users) OpenValidateOTP(phone string) {
	p.open(view.Dialog{Kind: DialogValidateOTP, Target: phone})
}

func (p *Users) OpenCreate() {
	p.open(view.Dialog{Kind: DialogCreate, Fields: map[string]string{}})
}

// RequestDelete opens the confirmation for deleting phone.
func (p *Users) RequestDelete(phone string) {
	p.open(view.Dialog{Kind: DialogDeleteUser, Target: phone})
}

func (p *Users) CancelDialog() {
	p.st.closeDialog()
}

// Reject shows msg in the banner for input refused before any call was made.
func (p *Users) Reject(msg string) {
	p.st.apply(func(s view.ListState[models.User]) view.ListState[models.User] {
		return s.WithError(msg)
	})
}

func (p *Users) open(d view.Dialog) {
	p.st.apply(func(s view.ListState[models.User]) view.ListState[models.User] {
		return s.WithDialog(d)
	})
}

func (p *Users) SendOTP(ctx context.Context, phone string) error {
	return mutate(ctx, p.st, p.opts, "OTP generated", "Failed to send OTP", func(ctx context.Context) error {
		_, err := p.api.SendOTP(ctx, phone)
		return err
	}, p.Refresh)
}

func (p *Users) SubmitEmail(ctx context.Context, email string) error {
	return p.submit(ctx, DialogEmail, func(d view.Dialog) view.Dialog {
		d.Value = email
		return d
	}, "Email updated", "Failed to update email", func(ctx context.Context, d view.Dialog) error {
		_, err := p.api.UpdateEmail(ctx, d.Target, d.Value)
		return err
	})
}

func (p *Users) SubmitCallback(ctx context.Context, when string) error {
	return p.submit(ctx, DialogCallback, func(d view.Dialog) view.Dialog {
		d.Value = when
		return d
	}, "Callback scheduled", "Failed to schedule callback", func(ctx context.Context, d view.Dialog) error {
		_, err := p.api.ScheduleCallback(ctx, d.Target, d.Value)
		return err
	})
}

func (p *Users) SubmitOutcome(ctx context.Context, outcome string) error {
	return p.submit(ctx, DialogOutcome, func(d view.Dialog) view.Dialog {
		d.Value = outcome
		return d
	}, "Outcome set", "Failed to set outcome", func(ctx context.Context, d view.Dialog) error {
		_, err := p.api.SetOutcome(ctx, d.Target, d.Value)
		return err
	})
}

func (p *Users) SubmitCreate(ctx context.Context, req models.CreateUserRequest) error {
	return p.submit(ctx, DialogCreate, func(d view.Dialog) view.Dialog {
		d.Fields = map[string]string{
			"name":                   req.Name,
			"address":                req.Address,
			"phone_number":           req.PhoneNumber,
			"secondary_phone_number": req.SecondaryPhoneNumber,
			"dob":                    req.DOB,
			"email":                  req.Email,
		}
		return d
	}, "User created", "Failed to create user", func(ctx context.Context, d view.Dialog) error {
		_, err := p.api.CreateUser(ctx, req)
		return err
	})
}

func (p *Users) SubmitValidateOTP(ctx context.Context, otp string) error {
	return p.submit(ctx, DialogValidateOTP, func(d view.Dialog) view.Dialog {
		d.Value = otp
		return d
	}, "OTP verified", "Failed to validate OTP", func(ctx context.Context, d view.Dialog) error {
		res, err := p.api.ValidateOTP(ctx, d.Target, d.Value)
		if err != nil {
			return err
		}
		if !res.Verified {
			return errNotVerified
		}
		return nil
	})
}

func (p *Users) ConfirmDelete(ctx context.Context) error {
	return p.submit(ctx, DialogDeleteUser, func(d view.Dialog) view.Dialog {
		return d
	}, "User deleted", "Failed to delete user", func(ctx context.Context, d view.Dialog) error {
		_, err := p.api.DeleteUser(ctx, d.Target)
		return err
	})
}

// submit runs the mutation behind the open dialog of the given kind. With
// no such dialog open it does nothing.
func (p *Users) submit(ctx context.Context, kind string, record func(view.Dialog) view.Dialog, notice, fallback string, call func(context.Context, view.Dialog) error) error {
	d := p.st.snapshot().Dialog
	if !d.Is(kind) {
		return nil
	}
	d = record(d)
	p.open(d)
	return mutate(ctx, p.st, p.opts, notice, fallback, func(ctx context.Context) error {
		return call(ctx, d)
	}, p.Refresh)
}

// Lookup finds a single user by "phone" or "name". It does not touch the
// list.
func (p *Users) Lookup(ctx context.Context, by, key string) error {
	key = strings.TrimSpace(key)
	p.setLookup(UserLookup{By: by, Key: key, Loading: true})

	var (
		user models.User
		err  error
	)
	switch by {
	case "phone":
		user, err = p.api.GetUserByPhone(ctx, key)
	case "name":
		user, err = p.api.GetUserByName(ctx, key)
	default:
		err = fmt.Errorf("unknown lookup %q", by)
	}

	p.lookupMu.Lock()
	defer p.lookupMu.Unlock()
	if p.lookup.By != by || p.lookup.Key != key {
		return err
	}
	if err != nil {
		p.lookup = UserLookup{By: by, Key: key, Err: backend.Message(err, "User not found")}
		return err
	}
	p.lookup = UserLookup{By: by, Key: key, User: &user}
	return nil
}

func (p *Users) LookupResult() UserLookup {
	p.lookupMu.Lock()
	defer p.lookupMu.Unlock()
	out := p.lookup
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (p *Users) ClearLookup() {
	p.setLookup(UserLookup{})
}

func (p *Users) setLookup(l UserLookup) {
	p.lookupMu.Lock()
	defer p.lookupMu.Unlock()
	p.lookup = l
}
