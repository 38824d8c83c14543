package people

import (
	"time"

	ts "example.com/timestamps"
)

//codable:container=keyed,access=public
type Person struct {
	FirstName string    `codable:"first_name"`
	LastName  *string   `codable:"last_name,conditional"`
	Street    string    `codable:"street,group=address"`
	City      string    `codable:",group=address"`
	Born      time.Time `codable:"born,transform=ts.Unix"`
	Age       int
	Secret    string `codable:"-"`
	cache     []byte
	note      string `codable:"note"`
}

type Ignored struct {
	A int
}

//codable:container=singleValueForEnum
type Kind string

const (
	KindA Kind = "a"
	KindB Kind = "b" //codable:key=bee
	//codable:-
	kindMax Kind = "max"
)

//codable:container=singleValueForEnum
type Level int

const (
	Low Level = iota
	Mid
	High //codable:key=top
)

const Unrelated = 3

//codable:container=singleValue(ID)
type UserID struct {
	ID string
}

//codable:container=keyed
type Alias = Person
