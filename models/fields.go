package models

// BookingFields holds the details collected from a guest while a booking is
// being assembled. Every field is a pointer so "not yet provided" is
// distinguishable from a zero value; extraction only ever fills fields, it
// never erases them.
type BookingFields struct {
	CheckIn    *string `bson:"check_in,omitempty" json:"check_in,omitempty"`       // "YYYY-MM-DD"
	CheckOut   *string `bson:"check_out,omitempty" json:"check_out,omitempty"`     // "YYYY-MM-DD"
	RoomType   *string `bson:"room_type,omitempty" json:"room_type,omitempty"`     // catalog room key, lowercase
	NumGuests  *int    `bson:"num_guests,omitempty" json:"num_guests,omitempty"`   // party size
	GuestName  *string `bson:"guest_name,omitempty" json:"guest_name,omitempty"`   // full name as given
	GuestEmail *string `bson:"guest_email,omitempty" json:"guest_email,omitempty"` // contact email
	GuestPhone *string `bson:"guest_phone,omitempty" json:"guest_phone,omitempty"` // contact phone, digits
}

// Merge copies every populated field of other into f, overwriting values f
// already holds. Later messages win so guests can correct themselves
// mid-conversation.
func (f *BookingFields) Merge(other BookingFields) {
	if other.CheckIn != nil {
		f.CheckIn = other.CheckIn
	}
	if other.CheckOut != nil {
		f.CheckOut = other.CheckOut
	}
	if other.RoomType != nil {
		f.RoomType = other.RoomType
	}
	if other.NumGuests != nil {
		f.NumGuests = other.NumGuests
	}
	if other.GuestName != nil {
		f.GuestName = other.GuestName
	}
	if other.GuestEmail != nil {
		f.GuestEmail = other.GuestEmail
	}
	if other.GuestPhone != nil {
		f.GuestPhone = other.GuestPhone
	}
}

// Empty reports whether no field has been collected yet.
func (f BookingFields) Empty() bool {
	return f.CheckIn == nil && f.CheckOut == nil && f.RoomType == nil &&
		f.NumGuests == nil && f.GuestName == nil && f.GuestEmail == nil &&
		f.GuestPhone == nil
}

// StrPtr and IntPtr are small helpers for building BookingFields literals.
func StrPtr(s string) *string { return &s }
func IntPtr(n int) *int       { return &n }
