package pasta

// Sauce is the closed union of sauce particle variants.
// The private marker method restricts implementers to this package.
type Sauce interface {
	sauceMarker()
}

// Marinara is the fundamental tomato particle.
type Marinara struct {
	Spiciness float64
}

// Alfredo carries an unsigned creaminess payload.
type Alfredo struct {
	Creaminess uint32
}

// Pesto carries a signed basil quotient.
type Pesto struct {
	BasilQuotient int64
}

// VoidSauce carries no payload. Nobody knows what it tastes like.
type VoidSauce struct{}

func (Marinara) sauceMarker()  {}
func (Alfredo) sauceMarker()   {}
func (Pesto) sauceMarker()     {}
func (VoidSauce) sauceMarker() {}
