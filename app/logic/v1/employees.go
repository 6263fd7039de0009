package v1

import (
	"context"
	"strconv"

	"github.com/samber/lo"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type EmployeesData struct {
	SelectedAccountID int64 `json:"selected_account_id"`
}

func (EmployeesData) DialogID() string { return DialogEmployees }

func NewEmployeesData() session.Data { return &EmployeesData{} }

type EmployeesService struct {
	core *core.Core
}

func NewEmployeesService(core *core.Core) *EmployeesService {
	return &EmployeesService{core: core}
}

func (s *EmployeesService) Select(c *dialog.Context, accountID string) error {
	id, err := strconv.ParseInt(accountID, 10, 64)
	if err != nil {
		return errors.New("EmployeesService.Select", "bad account id "+accountID, err).
			Kind(errors.KindValidation)
	}
	c.Data().(*EmployeesData).SelectedAccountID = id
	c.SwitchTo(StateEmployeesDetail)
	return nil
}

func (s *EmployeesService) ToggleModeration(c *dialog.Context) error {
	return s.togglePermission(c, func(e *types.Employee) types.UpdateEmployeePermissions {
		return types.UpdateEmployeePermissions{RequiredModeration: lo.ToPtr(!e.RequiredModeration)}
	})
}

func (s *EmployeesService) ToggleAutoposting(c *dialog.Context) error {
	return s.togglePermission(c, func(e *types.Employee) types.UpdateEmployeePermissions {
		return types.UpdateEmployeePermissions{Autoposting: lo.ToPtr(!e.Autoposting)}
	})
}

func (s *EmployeesService) togglePermission(c *dialog.Context, build func(*types.Employee) types.UpdateEmployeePermissions) error {
	data := c.Data().(*EmployeesData)

	employee, err := s.core.Clients().Employee.GetByAccount(c.Context(), data.SelectedAccountID)
	if err != nil {
		return errors.Trace("EmployeesService.togglePermission", err)
	}
	err = s.core.Clients().Employee.UpdatePermissions(c.Context(), data.SelectedAccountID, build(employee))
	return errors.Trace("EmployeesService.togglePermission", err)
}

func (s *EmployeesService) Remove(c *dialog.Context) error {
	data := c.Data().(*EmployeesData)
	if err := s.core.Clients().Employee.Delete(c.Context(), data.SelectedAccountID); err != nil {
		return errors.Trace("EmployeesService.Remove", err)
	}
	data.SelectedAccountID = 0
	c.SwitchTo(StateEmployeesList)
	return nil
}

type EmployeesGetter struct {
	core *core.Core
}

func NewEmployeesGetter(core *core.Core) *EmployeesGetter {
	return &EmployeesGetter{core: core}
}

func (g *EmployeesGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	if view.User == nil || view.User.OrganizationID == 0 {
		return nil, &dialog.RestartError{Target: RecoveryTarget(view.User)}
	}

	list, err := g.core.Clients().Employee.ListByOrganization(ctx, view.User.OrganizationID)
	if err != nil {
		return nil, errors.Trace("EmployeesGetter.ViewData", err)
	}

	options := lo.Map(list, func(e types.Employee, _ int) dialog.SelectOption {
		return dialog.SelectOption{
			Value: strconv.FormatInt(e.AccountID, 10),
			Label: e.Name,
		}
	})

	vd := dialog.ViewData{
		"employees": options,
		"count":     strconv.Itoa(len(list)),
	}

	data, _ := view.Data.(*EmployeesData)
	if data != nil && data.SelectedAccountID != 0 {
		if selected, ok := lo.Find(list, func(e types.Employee) bool {
			return e.AccountID == data.SelectedAccountID
		}); ok {
			vd["employee_name"] = selected.Name
			vd["employee_role"] = selected.Role
			vd["required_moderation"] = onOff(selected.RequiredModeration)
			vd["autoposting"] = onOff(selected.Autoposting)
		}
	}
	return vd, nil
}

func onOff(v bool) string {
	if v {
		return "✅"
	}
	return "☐"
}
