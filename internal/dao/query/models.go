package query

import (
	"robodesk/internal/consts"
	"robodesk/internal/model/entity"
)

// Models 表名和实体的对应关系，交给gorm网关处理软删除和更新时间
func Models() map[string]any {
	return map[string]any{
		consts.TableProfiles:         &entity.User{},
		consts.TableContracts:        &entity.Contract{},
		consts.TableCosts:            &entity.Cost{},
		consts.TableSolutionRequests: &entity.SolutionRequest{},
		consts.TablePlans:            &entity.Plan{},
		consts.TableRobots:           &entity.Robot{},
		consts.TableDownloadLogs:     &entity.DownloadLog{},
	}
}
