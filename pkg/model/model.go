package model

// Entities stored in the document store. CreatedAt values are unix
// milliseconds, matching what the original web client wrote.

type Track struct {
	ID        string `json:"-"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Notes     string `json:"notes,omitempty"`
	OwnerID   string `json:"ownerId"`
	CreatedAt int64  `json:"createdAt"`
}

type Day struct {
	ID                 string `json:"-"`
	TrackID            string `json:"trackId"`
	RaceName           string `json:"raceName"`
	CreatedAt          int64  `json:"createdAt"`
	SurfaceCondition   string `json:"surfaceCondition"`
	MoistureContent    string `json:"moistureContent"`
	GripLevel          string `json:"gripLevel"`
	GroovePosition     string `json:"groovePosition"`
	SurfaceTexture     string `json:"surfaceTexture"`
	AirTemperature     string `json:"airTemperature"`
	SurfaceTemperature string `json:"surfaceTemperature"`
	Humidity           string `json:"humidity"`
	TimeOfDay          string `json:"timeOfDay"`
	WindConditions     string `json:"windConditions"`
	PointsEarned       int    `json:"pointsEarned"`
	OwnerID            string `json:"ownerId"`
}

type TireSet struct {
	ID        string `json:"-"`
	SetName   string `json:"setName"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Quantity  int    `json:"quantity"`
	OwnerID   string `json:"ownerId"`
	CreatedAt int64  `json:"createdAt"`
}

type Tire struct {
	ID        string `json:"-"`
	TireName  string `json:"tireName"`
	SetID     string `json:"setId"`
	OwnerID   string `json:"ownerId"`
	CreatedAt int64  `json:"createdAt"`
}

type TireEvent struct {
	ID            string `json:"-"`
	TireID        string `json:"tireId"`
	OuterChemical string `json:"outerChemical"`
	OuterAmount   string `json:"outerAmount"`
	InnerChemical string `json:"innerChemical"`
	InnerAmount   string `json:"innerAmount"`
	Description   string `json:"description"`
	OwnerID       string `json:"ownerId"`
	CreatedAt     int64  `json:"createdAt"`
}

type Build struct {
	ID        string            `json:"-"`
	Name      string            `json:"name"`
	Settings  map[string]string `json:"settings"`
	OwnerID   string            `json:"ownerId"`
	CreatedAt int64             `json:"createdAt"`
}

type UserProfile struct {
	OwnerID               string `json:"ownerId"`
	DisplayName           string `json:"displayName"`
	DOB                   string `json:"dob"`
	RacingTeam            string `json:"racingTeam"`
	KartNumber            string `json:"kartNumber"`
	RacingClass           string `json:"racingClass"`
	ProfilePictureDataURI string `json:"profilePictureDataUri,omitempty"`
}

func (t *Track) setID(id string)     { t.ID = id }
func (d *Day) setID(id string)       { d.ID = id }
func (s *TireSet) setID(id string)   { s.ID = id }
func (t *Tire) setID(id string)      { t.ID = id }
func (e *TireEvent) setID(id string) { e.ID = id }
func (b *Build) setID(id string)     { b.ID = id }

// the profile doc is addressed by uid, it carries no generated id
func (p *UserProfile) setID(string) {}
