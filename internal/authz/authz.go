package authz

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

// Resources and actions known to the permission model. Every HTTP route is
// gated on exactly one (resource, action) pair through the Authorize
// middleware, so permission checks live here instead of inline role
// comparisons scattered over handlers.
const (
	ResourceLeave  = "leave"
	ResourceUser   = "user"
	ResourceAudit  = "audit"
	ResourceReport = "report"

	ActionCreate  = "create"
	ActionEdit    = "edit"
	ActionCancel  = "cancel"
	ActionDecide  = "decide"
	ActionReadOwn = "read_own"
	ActionReadAll = "read_all"
	ActionManage  = "manage"
	ActionRead    = "read"
	ActionExport  = "export"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policy is the static permission table. Roles are closed, so the table is
// compiled in rather than loaded from storage.
var policy = [][]string{
	{RoleEmployee.String(), ResourceLeave, ActionCreate},
	{RoleEmployee.String(), ResourceLeave, ActionEdit},
	{RoleEmployee.String(), ResourceLeave, ActionCancel},
	{RoleEmployee.String(), ResourceLeave, ActionReadOwn},

	{RoleManager.String(), ResourceLeave, ActionDecide},
	{RoleManager.String(), ResourceLeave, ActionReadOwn},
	{RoleManager.String(), ResourceLeave, ActionReadAll},

	{RoleAdmin.String(), ResourceUser, ActionManage},
	{RoleAdmin.String(), ResourceAudit, ActionRead},
	{RoleAdmin.String(), ResourceReport, ActionExport},
	{RoleAdmin.String(), ResourceLeave, ActionReadOwn},
	{RoleAdmin.String(), ResourceLeave, ActionReadAll},
}

//go:generate mockgen -source=authz.go -destination=mock/authz_mock.go -package=mock
type Service interface {
	Authorize(role Role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("authz.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("authz.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policy {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Authorize(role Role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		s.logger.Error("authorize failed",
			zap.String("role", role.String()),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("authorize result",
		zap.String("role", role.String()),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
