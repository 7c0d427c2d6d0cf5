package database

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
)

func Casbin() *casbin.Enforcer {
	// Initialize casbin adapter
	adapter, err := gormadapter.NewAdapterByDB(Postgres)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize casbin adapter: %v", err))
	}

	// Load model configuration file and policy store adapter
	e, err := casbin.NewEnforcer("config/restful_rbac_model.conf", adapter)
	if err != nil {
		panic(fmt.Sprintf("failed to create casbin enforcer: %v", err))
	}

	e.LoadPolicy()
	return e
}

// GrantCoupleAccess lets any device authenticated for a pairing code reach
// that couple's namespace and nothing else.
func GrantCoupleAccess(code string) {
	e := Casbin()
	object := fmt.Sprintf("/v1/couples/%s*", code)
	methods := "(GET)|(POST)|(PATCH)|(DELETE)"
	if hasPolicy, _ := e.HasPolicy(code, object, methods); !hasPolicy {
		e.AddPolicy(code, object, methods)
	}
}
