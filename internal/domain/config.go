package domain

// HostInfo is the organizer fragment of the setup configuration. The wallet
// address is only carried through to the on-chain deployment step, which is
// an external collaborator.
type HostInfo struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Wallet string `json:"wallet,omitempty"`
}

// PaymentInfo is the entry-fee fragment. Payment-method semantics live in
// the payment collection UI, not here.
type PaymentInfo struct {
	Method   string  `json:"method,omitempty"`
	EntryFee float64 `json:"entryFee,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// Prize is one entry in the prize table assembled on the prizes step.
type Prize struct {
	Place       int     `json:"place"`
	Description string  `json:"description"`
	Value       float64 `json:"value,omitempty"`
	Sponsor     string  `json:"sponsor,omitempty"`
}

// SessionIdentifiers are the pre-room/room handles minted for one wizard
// session; they outlive a config reset when the caller asks for it.
type SessionIdentifiers struct {
	PreRoomID string `json:"preRoomId,omitempty"`
	RoomID    string `json:"roomId,omitempty"`
}

// SetupConfig is the aggregate, progressively-built event configuration.
// Step views write fragments of it; the flow controller reads only
// SkipRoundConfiguration.
type SetupConfig struct {
	TemplateID             string            `json:"templateId,omitempty"`
	SkipRoundConfiguration bool              `json:"skipRoundConfiguration"`
	Rounds                 []RoundDefinition `json:"rounds,omitempty"`
	Host                   HostInfo          `json:"host"`
	Payment                PaymentInfo       `json:"payment"`
	Fundraising            map[string]any    `json:"fundraising,omitempty"`
	Prizes                 []Prize           `json:"prizes,omitempty"`
}

// HostInfoPatch is a partial HostInfo; nil fields are left untouched.
type HostInfoPatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Wallet *string `json:"wallet,omitempty"`
}

// PaymentInfoPatch is a partial PaymentInfo; nil fields are left untouched.
type PaymentInfoPatch struct {
	Method   *string  `json:"method,omitempty"`
	EntryFee *float64 `json:"entryFee,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

// ConfigPatch is a partial SetupConfig update. The merge discipline is
// structural here rather than shape-sniffed: pointer and nested-patch fields
// merge into the existing value, slice fields replace the existing slice
// wholesale when non-nil, and the free-form Fundraising map deep-merges
// key-by-key (nested maps merge recursively, arrays replace). A caller that
// wants to edit one round reads the current list, replaces the target
// element, and writes the whole list back.
type ConfigPatch struct {
	TemplateID             *string           `json:"templateId,omitempty"`
	SkipRoundConfiguration *bool             `json:"skipRoundConfiguration,omitempty"`
	Rounds                 []RoundDefinition `json:"rounds,omitempty"`
	Host                   *HostInfoPatch    `json:"host,omitempty"`
	Payment                *PaymentInfoPatch `json:"payment,omitempty"`
	Fundraising            map[string]any    `json:"fundraising,omitempty"`
	Prizes                 []Prize           `json:"prizes,omitempty"`
}
