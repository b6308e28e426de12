package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type DomainAccountType string

const (
	PolytoneAccountType DomainAccountType = "polytone"
	IcaAccountType      DomainAccountType = "ica"
)

// DomainAccount describes how the auction reaches a remote domain.
// The concrete types are PolytoneAccount and IcaAccount.
type DomainAccount interface {
	GetDomain() string
	GetType() DomainAccountType
}

// PolytoneAccount routes through a note contract on the local domain and a
// voice contract on the remote one.
type PolytoneAccount struct {
	Domain       string
	NoteAddress  string
	VoiceAddress string
	Timeout      time.Duration
}

func (a PolytoneAccount) GetDomain() string          { return a.Domain }
func (a PolytoneAccount) GetType() DomainAccountType { return PolytoneAccountType }

// IcaAccount routes through an interchain account opened on ConnectionId.
type IcaAccount struct {
	Domain       string
	ConnectionId string
	ChannelId    string
	Timeout      time.Duration
}

func (a IcaAccount) GetDomain() string          { return a.Domain }
func (a IcaAccount) GetType() DomainAccountType { return IcaAccountType }

func ValidateDomainAccount(account DomainAccount) error {
	switch a := account.(type) {
	case PolytoneAccount:
		if len(a.Domain) <= 0 {
			return fmt.Errorf("polytone account: missing domain")
		}
		if len(a.NoteAddress) <= 0 || len(a.VoiceAddress) <= 0 {
			return fmt.Errorf("polytone account %s: missing note or voice address", a.Domain)
		}
		if a.Timeout <= 0 {
			return fmt.Errorf("polytone account %s: timeout must be positive", a.Domain)
		}
	case IcaAccount:
		if len(a.Domain) <= 0 {
			return fmt.Errorf("ica account: missing domain")
		}
		if len(a.ConnectionId) <= 0 {
			return fmt.Errorf("ica account %s: missing connection id", a.Domain)
		}
		if a.Timeout <= 0 {
			return fmt.Errorf("ica account %s: timeout must be positive", a.Domain)
		}
	default:
		return fmt.Errorf("unknown domain account type %T", account)
	}
	return nil
}

// DomainAccounts serializes each account with a type tag.
type DomainAccounts []DomainAccount

type domainAccountJSON struct {
	Type         DomainAccountType `json:"type"`
	Domain       string            `json:"domain"`
	NoteAddress  string            `json:"note_address,omitempty"`
	VoiceAddress string            `json:"voice_address,omitempty"`
	ConnectionId string            `json:"connection_id,omitempty"`
	ChannelId    string            `json:"channel_id,omitempty"`
	// Timeout is expressed in seconds.
	Timeout int64 `json:"timeout"`
}

func (d DomainAccounts) MarshalJSON() ([]byte, error) {
	out := make([]domainAccountJSON, 0, len(d))
	for _, account := range d {
		switch a := account.(type) {
		case PolytoneAccount:
			out = append(out, domainAccountJSON{
				Type:         PolytoneAccountType,
				Domain:       a.Domain,
				NoteAddress:  a.NoteAddress,
				VoiceAddress: a.VoiceAddress,
				Timeout:      int64(a.Timeout / time.Second),
			})
		case IcaAccount:
			out = append(out, domainAccountJSON{
				Type:         IcaAccountType,
				Domain:       a.Domain,
				ConnectionId: a.ConnectionId,
				ChannelId:    a.ChannelId,
				Timeout:      int64(a.Timeout / time.Second),
			})
		default:
			return nil, fmt.Errorf("unknown domain account type %T", account)
		}
	}
	return json.Marshal(out)
}

func (d *DomainAccounts) UnmarshalJSON(buf []byte) error {
	var raw []domainAccountJSON
	if err := json.Unmarshal(buf, &raw); err != nil {
		return err
	}

	accounts := make(DomainAccounts, 0, len(raw))
	for _, r := range raw {
		timeout := time.Duration(r.Timeout) * time.Second
		switch r.Type {
		case PolytoneAccountType:
			accounts = append(accounts, PolytoneAccount{
				Domain:       r.Domain,
				NoteAddress:  r.NoteAddress,
				VoiceAddress: r.VoiceAddress,
				Timeout:      timeout,
			})
		case IcaAccountType:
			accounts = append(accounts, IcaAccount{
				Domain:       r.Domain,
				ConnectionId: r.ConnectionId,
				ChannelId:    r.ChannelId,
				Timeout:      timeout,
			})
		default:
			return fmt.Errorf("unknown domain account type %q", r.Type)
		}
	}
	*d = accounts
	return nil
}

func (d DomainAccounts) Find(domain string) DomainAccount {
	for _, account := range d {
		if account.GetDomain() == domain {
			return account
		}
	}
	return nil
}

// AccountRegistration records the confirmed remote address of a domain
// account.
type AccountRegistration struct {
	Domain      string
	Address     string
	ConfirmedAt int64
}
