package domain

// ProfilePatch carries the subset of profile fields a user edits. Nil fields
// are left untouched when applied.
type ProfilePatch struct {
	FirstName      *string  `json:"first_name,omitempty"`
	LastName       *string  `json:"last_name,omitempty"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber    *string  `json:"phone_number,omitempty"`
	Specialization *string  `json:"specialization,omitempty"`
	JobType        *string  `json:"jobType,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Rate           *float64 `json:"rate,omitempty" validate:"omitempty,gte=0"`
	Bio            *string  `json:"bio,omitempty"`
	Skills         *[]Skill `json:"skills,omitempty"`
	Experience     *int     `json:"experience,omitempty" validate:"omitempty,gte=0"`
	Availability   *string  `json:"availability,omitempty"`
	LinkedinURL    *string  `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	GithubURL      *string  `json:"githubUrl,omitempty" validate:"omitempty,url"`
	ProfilePicture *string  `json:"profilePicture,omitempty"`
}

// Fields lists the wire names of the set fields.
func (p ProfilePatch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.FirstName != nil, "first_name")
	add(p.LastName != nil, "last_name")
	add(p.Email != nil, "email")
	add(p.PhoneNumber != nil, "phone_number")
	add(p.Specialization != nil, "specialization")
	add(p.JobType != nil, "jobType")
	add(p.Location != nil, "location")
	add(p.Rate != nil, "rate")
	add(p.Bio != nil, "bio")
	add(p.Skills != nil, "skills")
	add(p.Experience != nil, "experience")
	add(p.Availability != nil, "availability")
	add(p.LinkedinURL != nil, "linkedinUrl")
	add(p.GithubURL != nil, "githubUrl")
	add(p.ProfilePicture != nil, "profilePicture")
	return fields
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Apply returns a copy of u with the set fields of p merged in.
func (p ProfilePatch) Apply(u User) User {
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.Email, p.Email)
	setString(&u.PhoneNumber, p.PhoneNumber)
	setString(&u.Specialization, p.Specialization)
	setString(&u.JobType, p.JobType)
	setString(&u.Location, p.Location)
	setString(&u.Bio, p.Bio)
	setString(&u.Availability, p.Availability)
	setString(&u.LinkedinURL, p.LinkedinURL)
	setString(&u.GithubURL, p.GithubURL)
	setString(&u.ProfilePicture, p.ProfilePicture)
	if p.Rate != nil {
		u.Rate = *p.Rate
	}
	if p.Experience != nil {
		u.Experience = *p.Experience
	}
	if p.Skills != nil {
		u.Skills = append([]Skill(nil), (*p.Skills)...)
	} else if u.Skills != nil {
		u.Skills = append([]Skill(nil), u.Skills...)
	}
	return u
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
