package spatial

import "fmt"

// Ray is the half-line Origin + Direction*t for t >= 0.
//
// Direction does not have to be unit length; normalise it when t should read as a
// distance.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray from an origin and a direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Point returns the position at parameter t
func (r Ray) Point(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Normalize returns the same ray with a unit direction.
func (r Ray) Normalize() (Ray, error) {
	dir, err := r.Direction.Normalize()
	if err != nil {
		return Ray{}, fmt.Errorf("ray direction: %w", err)
	}
	return Ray{Origin: r.Origin, Direction: dir}, nil
}

func (r Ray) String() string {
	return fmt.Sprintf("ray{origin: %v, direction: %v}", r.Origin, r.Direction)
}
