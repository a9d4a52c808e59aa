package initializers

import (
	"context"
	"procurement-tools-backend/config"
	"procurement-tools-backend/fiberlog"
	authhandler "procurement-tools-backend/lib/auth"
	departmentprovider "procurement-tools-backend/lib/dicts/department"
	xlsexport "procurement-tools-backend/lib/export/xls"
	notifyhandler "procurement-tools-backend/lib/notify"
	procurementhandler "procurement-tools-backend/lib/procurement"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	departmentprovider.NewHandler()
	authhandler.NewHandler()
	xlsexport.NewHandler()
	notifyhandler.NewHandler()
	procurementhandler.NewHandler()
}
