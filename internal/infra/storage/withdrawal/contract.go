package withdrawal

import "github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
