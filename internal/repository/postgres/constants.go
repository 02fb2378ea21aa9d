package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound = "user not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateUserFmt     = "failed to create user: %w"
	errFailedGetUserFmt        = "failed to get user: %w"
	errFailedCheckEmailFmt     = "failed to check email existence: %w"
	errFailedUpdateUserRoleFmt = "failed to update user role: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedCheckEmail           = func(err error) error { return fmt.Errorf(errFailedCheckEmailFmt, err) }
	errFailedUpdateUserRole       = func(err error) error { return fmt.Errorf(errFailedUpdateUserRoleFmt, err) }
)
