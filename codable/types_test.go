package codable_test

import (
	"time"

	"github.com/signadot/tony-format/go-codable/codable"
)

// The types in this file are written the way codable-gen emits them.

type Person struct {
	FirstName string
	LastName  *string
}

func (v *Person) EncodeTo(enc *codable.Encoder) error {
	c := enc.KeyedContainer()
	if err := c.Encode("first_name", v.FirstName); err != nil {
		return err
	}
	if err := c.EncodeIfPresent("last_name", v.LastName); err != nil {
		return err
	}
	return nil
}

func (v *Person) DecodeFrom(dec *codable.Decoder) error {
	c, err := dec.KeyedContainer()
	if err != nil {
		return err
	}
	var firstName string
	if err := c.Decode("first_name", &firstName); err != nil {
		return err
	}
	var lastName *string
	if err := c.DecodeIfPresent("last_name", &lastName); err != nil {
		return err
	}
	*v = Person{
		FirstName: firstName,
		LastName:  lastName,
	}
	return nil
}

type Grouped struct {
	A int
	B string
	C bool
}

func (v *Grouped) EncodeTo(enc *codable.Encoder) error {
	c := enc.KeyedContainer()
	g := c.NestedKeyedContainer("g")
	if err := g.Encode("a", v.A); err != nil {
		return err
	}
	if err := g.Encode("b", v.B); err != nil {
		return err
	}
	if err := c.Encode("c", v.C); err != nil {
		return err
	}
	return nil
}

func (v *Grouped) DecodeFrom(dec *codable.Decoder) error {
	c, err := dec.KeyedContainer()
	if err != nil {
		return err
	}
	g, err := c.NestedKeyedContainer("g")
	if err != nil {
		return err
	}
	var a int
	if err := g.Decode("a", &a); err != nil {
		return err
	}
	var b string
	if err := g.Decode("b", &b); err != nil {
		return err
	}
	var c_ bool
	if err := c.Decode("c", &c_); err != nil {
		return err
	}
	*v = Grouped{
		A: a,
		B: b,
		C: c_,
	}
	return nil
}

type UserKind int

const (
	Regular UserKind = iota
	Premium
)

func (v *UserKind) EncodeTo(enc *codable.Encoder) error {
	c := enc.SingleValueContainer()
	if *v == Regular {
		return c.Encode("user_regular")
	}
	if *v == Premium {
		return c.Encode("user_premium")
	}
	return codable.InvalidValue(enc, "UserKind", *v)
}

func (v *UserKind) DecodeFrom(dec *codable.Decoder) error {
	c, err := dec.SingleValueContainer()
	if err != nil {
		return err
	}
	var raw string
	if err := c.Decode(&raw); err != nil {
		return err
	}
	switch raw {
	case "user_regular":
		*v = Regular
	case "user_premium":
		*v = Premium
	default:
		return c.DataCorruptedf("cannot initialize UserKind from invalid string value %q", raw)
	}
	return nil
}

type UserID struct {
	ID string
}

func (v *UserID) EncodeTo(enc *codable.Encoder) error {
	c := enc.SingleValueContainer()
	return c.Encode(v.ID)
}

func (v *UserID) DecodeFrom(dec *codable.Decoder) error {
	c, err := dec.SingleValueContainer()
	if err != nil {
		return err
	}
	var id string
	if err := c.Decode(&id); err != nil {
		return err
	}
	*v = UserID{
		ID: id,
	}
	return nil
}

// UnixTime codes a time.Time as seconds since the epoch.
type UnixTime int64

func (u *UnixTime) FromValue(t time.Time) { *u = UnixTime(t.Unix()) }

func (u *UnixTime) Value() time.Time { return time.Unix(int64(*u), 0).UTC() }

type Account struct {
	ID      UserID
	Kind    UserKind
	Owner   Person
	Created time.Time
	Closed  *time.Time
	Tags    []string
	Aliases []UserID
}

func (v *Account) EncodeTo(enc *codable.Encoder) error {
	c := enc.KeyedContainer()
	meta := c.NestedKeyedContainer("meta")
	if err := c.Encode("id", v.ID); err != nil {
		return err
	}
	if err := c.Encode("kind", v.Kind); err != nil {
		return err
	}
	if err := c.Encode("owner", v.Owner); err != nil {
		return err
	}
	if err := codable.EncodeTransformed(meta, "created", new(UnixTime), v.Created); err != nil {
		return err
	}
	if err := codable.EncodeTransformedIfPresent(meta, "closed", new(UnixTime), v.Closed); err != nil {
		return err
	}
	if err := c.EncodeIfPresent("tags", v.Tags); err != nil {
		return err
	}
	if err := c.Encode("aliases", v.Aliases); err != nil {
		return err
	}
	return nil
}

func (v *Account) DecodeFrom(dec *codable.Decoder) error {
	c, err := dec.KeyedContainer()
	if err != nil {
		return err
	}
	meta, err := c.NestedKeyedContainer("meta")
	if err != nil {
		return err
	}
	var id UserID
	if err := c.Decode("id", &id); err != nil {
		return err
	}
	var kind UserKind
	if err := c.Decode("kind", &kind); err != nil {
		return err
	}
	var owner Person
	if err := c.Decode("owner", &owner); err != nil {
		return err
	}
	var created time.Time
	if err := codable.DecodeTransformed(meta, "created", new(UnixTime), &created); err != nil {
		return err
	}
	var closed *time.Time
	if err := codable.DecodeTransformedIfPresent(meta, "closed", new(UnixTime), &closed); err != nil {
		return err
	}
	var tags []string
	if err := c.DecodeIfPresent("tags", &tags); err != nil {
		return err
	}
	var aliases []UserID
	if err := c.Decode("aliases", &aliases); err != nil {
		return err
	}
	*v = Account{
		ID:      id,
		Kind:    kind,
		Owner:   owner,
		Created: created,
		Closed:  closed,
		Tags:    tags,
		Aliases: aliases,
	}
	return nil
}

// contact and team have internal access.
type contact struct {
	Name  string
	Email *string
}

func (v *contact) encodeTo(enc *codable.Encoder) error {
	c := enc.KeyedContainer()
	if err := c.Encode("name", v.Name); err != nil {
		return err
	}
	if err := c.EncodeIfPresent("email", v.Email); err != nil {
		return err
	}
	return nil
}

func (v *contact) decodeFrom(dec *codable.Decoder) error {
	c, err := dec.KeyedContainer()
	if err != nil {
		return err
	}
	var name string
	if err := c.Decode("name", &name); err != nil {
		return err
	}
	var email *string
	if err := c.DecodeIfPresent("email", &email); err != nil {
		return err
	}
	*v = contact{
		Name:  name,
		Email: email,
	}
	return nil
}

type team struct {
	Lead    contact
	Backups [2]contact
}

func (v *team) encodeTo(enc *codable.Encoder) error {
	c := enc.KeyedContainer()
	if err := c.Encode("lead", v.Lead); err != nil {
		return err
	}
	if err := c.Encode("backups", v.Backups); err != nil {
		return err
	}
	return nil
}

func (v *team) decodeFrom(dec *codable.Decoder) error {
	c, err := dec.KeyedContainer()
	if err != nil {
		return err
	}
	var lead contact
	if err := c.Decode("lead", &lead); err != nil {
		return err
	}
	var backups [2]contact
	if err := c.Decode("backups", &backups); err != nil {
		return err
	}
	*v = team{
		Lead:    lead,
		Backups: backups,
	}
	return nil
}

func init() {
	codable.Register((*contact).encodeTo, (*contact).decodeFrom)
	codable.Register((*team).encodeTo, (*team).decodeFrom)
}

func ptr[T any](v T) *T { return &v }
