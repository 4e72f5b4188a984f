package initializers

import (
	"context"

	"hr-requests-backend/config"
	"hr-requests-backend/fiberlog"
	activityloghandler "hr-requests-backend/lib/activity-log"
	authhandler "hr-requests-backend/lib/auth"
	xlsexport "hr-requests-backend/lib/export/xls"
	filestorage "hr-requests-backend/lib/file-storage"
	notifyhandler "hr-requests-backend/lib/notify"
	requesthandler "hr-requests-backend/lib/request"
	subscriptionhandler "hr-requests-backend/lib/subscription"
	usershandler "hr-requests-backend/lib/users"
	connectionhub "hr-requests-backend/lib/ws/hub/connection-hub"
	s3client "hr-requests-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler(s3client.Client)
	usershandler.NewHandler()
	authhandler.NewHandler()
	activityloghandler.NewHandler()
	subscriptionhandler.NewHandler()
	notifyhandler.NewHandler()
	requesthandler.NewHandler()
	xlsexport.NewHandler()
}
