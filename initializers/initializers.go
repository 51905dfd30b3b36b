package initializers

import (
	"context"
	"wfm-tools-backend/config"
	"wfm-tools-backend/fiberlog"
	clienthandler "wfm-tools-backend/lib/client"
	xlsexport "wfm-tools-backend/lib/export/xls"
	filestorage "wfm-tools-backend/lib/file-storage"
	invoicehandler "wfm-tools-backend/lib/invoice"
	invoiceoverdueworker "wfm-tools-backend/lib/invoice/overdue-worker"
	spaceauthhandler "wfm-tools-backend/lib/space/auth"
	spacehandler "wfm-tools-backend/lib/space/handler"
	spaceusershander "wfm-tools-backend/lib/space/users/hander"
	timesheethandler "wfm-tools-backend/lib/timesheet"
	timesheetevents "wfm-tools-backend/lib/timesheet/events"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	filestorage.NewHandler()
	xlsexport.NewHandler()
	timesheetevents.NewHandler()
	spacehandler.NewHandler()
	spaceauthhandler.NewHandler()
	spaceusershander.NewHandler()
	clienthandler.NewHandler()
	timesheethandler.NewHandler()
	invoicehandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	invoiceoverdueworker.StartWorker(ctx)
}
