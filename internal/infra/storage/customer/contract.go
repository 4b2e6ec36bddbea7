package customer

import "github.com/m04kA/SMC-SpaBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
