package ratings

// UserID is the stable identifier of a user.
type UserID int64

// ItemID is the stable identifier of a rated item.
type ItemID int64

// Rating is a single rating event.
type Rating struct {
	User      UserID  `json:"user"`
	Item      ItemID  `json:"item"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

// FromRatings builds a rating vector from a batch of rating events.
// Later events for the same item overwrite earlier ones.
func FromRatings(rs []Rating) Vector {
	v := make(Vector, len(rs))
	for _, r := range rs {
		v[r.Item] = r.Value
	}
	return v
}

// MaxTimestamp returns the largest timestamp in the batch, or 0 for an
// empty batch.
func MaxTimestamp(rs []Rating) int64 {
	if len(rs) == 0 {
		return 0
	}
	max := rs[0].Timestamp
	for _, r := range rs[1:] {
		if r.Timestamp > max {
			max = r.Timestamp
		}
	}
	return max
}
