package launch

// Role is a player's chosen profession. Each grants one passive or active
// ability; nothing stops two players picking the same role.
type Role int

const (
	NoRole Role = iota
	MobileDev
	SysArch
	QA
	ProductOwner
	ITSupport
)

const (
	baseHandLimit    = 10
	sysArchHandLimit = 11
)

var roleIDs = map[string]Role{
	"MOBILE_DEV":    MobileDev,
	"SYS_ARCH":      SysArch,
	"QA":            QA,
	"PRODUCT_OWNER": ProductOwner,
	"IT_SUPPORT":    ITSupport,
}

// ParseRole maps a wire role id to a Role.
func ParseRole(id string) (Role, error) {
	role, ok := roleIDs[id]
	if !ok {
		return NoRole, ErrUnknownRole
	}
	return role, nil
}

func (r Role) String() string {
	switch r {
	case MobileDev:
		return "MOBILE_DEV"
	case SysArch:
		return "SYS_ARCH"
	case QA:
		return "QA"
	case ProductOwner:
		return "PRODUCT_OWNER"
	case ITSupport:
		return "IT_SUPPORT"
	}
	return ""
}

// DisplayName is the human-readable role title used in log lines.
func (r Role) DisplayName() string {
	switch r {
	case MobileDev:
		return "Mobile Developer"
	case SysArch:
		return "System Architect"
	case QA:
		return "Quality Assurance"
	case ProductOwner:
		return "Product Owner"
	case ITSupport:
		return "IT Support"
	}
	return "Unassigned"
}

// HandLimit is the role-adjusted maximum hand size.
func (r Role) HandLimit() int {
	if r == SysArch {
		return sysArchHandLimit
	}
	return baseHandLimit
}
