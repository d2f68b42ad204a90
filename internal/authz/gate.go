package authz

// Role is the coarse permission level a principal acts with.
type Role string

const (
	RolePublic  Role = "public"
	RoleVisitor Role = "visitor"
	RoleAdmin   Role = "admin"
)

// Action is a class of operation checked against the capability table.
type Action string

const (
	// Reads available without authentication (public catalog, public
	// category list, geographic reference data).
	ActionPublicRead Action = "public.read"
	// Full catalog, supplier and profile reads.
	ActionCatalogRead Action = "catalog.read"
	// Create/update/delete of products, categories, colors, sizes,
	// suppliers, and geographic records.
	ActionCatalogWrite Action = "catalog.write"
	// Admin stock views (low_stock, out_of_stock).
	ActionStockReport Action = "stock.report"

	ActionOrderCreate Action = "order.create"
	ActionOrderRead   Action = "order.read"
	ActionOrderUpdate Action = "order.update"
	ActionOrderDelete Action = "order.delete"
)

// Principal is the resolved identity a request acts as. The zero value is
// not meaningful; use Anonymous for unauthenticated requests.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

// Anonymous is the principal used for requests without credentials.
var Anonymous = Principal{Role: RolePublic}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// capabilities is the role × action decision table. Absence means deny.
var capabilities = map[Action]map[Role]bool{
	ActionPublicRead: {
		RolePublic:  true,
		RoleVisitor: true,
		RoleAdmin:   true,
	},
	ActionCatalogRead: {
		RoleVisitor: true,
		RoleAdmin:   true,
	},
	ActionCatalogWrite: {
		RoleAdmin: true,
	},
	ActionStockReport: {
		RoleAdmin: true,
	},
	ActionOrderCreate: {
		RoleVisitor: true,
		RoleAdmin:   true,
	},
	ActionOrderRead: {
		RoleVisitor: true,
		RoleAdmin:   true,
	},
	ActionOrderUpdate: {
		RoleVisitor: true,
		RoleAdmin:   true,
	},
	ActionOrderDelete: {
		RoleAdmin: true,
	},
}

// Allowed reports whether the role may perform the action at all,
// independent of object ownership.
func Allowed(role Role, action Action) bool {
	return capabilities[action][role]
}

// AllowedOnOrder decides object-level access to a single order. Admins pass
// unconditionally; visitors must own the order; the role must also hold the
// action in the capability table.
func AllowedOnOrder(p Principal, ownerID string, action Action) bool {
	if !Allowed(p.Role, action) {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return p.UserID != "" && p.UserID == ownerID
}
