package master

import "github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
