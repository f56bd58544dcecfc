package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wardenhq/warden-server/internal/registry"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool against the given URL and verifies connectivity.
func Connect(ctx context.Context, url string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	cfg.MaxConns = 25
	cfg.MinConns = 5
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	slog.Info("Connected to PostgreSQL")
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// Pool exposes the underlying pool for migrations and health checks.
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

const deviceColumns = `id, agent_id, hostname, status, last_seen, is_disabled, metrics_interval`

func scanDevice(row pgx.Row) (*Device, error) {
	var d Device
	var status string
	var lastSeen *time.Time
	if err := row.Scan(&d.ID, &d.AgentID, &d.Hostname, &status, &lastSeen, &d.IsDisabled, &d.MetricsInterval); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to scan device: %w", err)
	}
	d.Status = registry.Status(status)
	if lastSeen != nil {
		d.LastSeen = *lastSeen
	}
	return &d, nil
}

func (p *Postgres) GetDeviceByAgentID(ctx context.Context, agentID string) (*Device, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE agent_id = $1`, agentID)
	return scanDevice(row)
}

func (p *Postgres) GetDeviceByID(ctx context.Context, id uuid.UUID) (*Device, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id)
	return scanDevice(row)
}

func (p *Postgres) GetDeviceStatus(ctx context.Context, id uuid.UUID) (registry.Status, time.Time, bool, error) {
	var status string
	var lastSeen *time.Time
	var disabled bool
	err := p.pool.QueryRow(ctx,
		`SELECT status, last_seen, is_disabled FROM devices WHERE id = $1`, id,
	).Scan(&status, &lastSeen, &disabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, false, ErrDeviceNotFound
		}
		return "", time.Time{}, false, fmt.Errorf("failed to get device status: %w", err)
	}
	seen := time.Time{}
	if lastSeen != nil {
		seen = *lastSeen
	}
	return registry.Status(status), seen, disabled, nil
}

func (p *Postgres) GetConnectedDeviceCount(ctx context.Context) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM devices
		 WHERE status = 'online' AND last_seen > NOW() - make_interval(secs => $1)`,
		registry.OnlineRecencyWindow.Seconds(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count connected devices: %w", err)
	}
	return n, nil
}

func (p *Postgres) UpdateDeviceControlPlaneStatus(ctx context.Context, deviceID uuid.UUID, connected bool) error {
	status := "offline"
	if connected {
		status = "online"
	}
	_, err := p.pool.Exec(ctx,
		`UPDATE devices SET status = $1, last_seen = NOW(), updated_at = NOW() WHERE id = $2`,
		status, deviceID)
	if err != nil {
		return fmt.Errorf("failed to update control-plane status: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateDeviceDataPlaneStatus(ctx context.Context, deviceID uuid.UUID, connected bool) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE devices SET data_plane_connected = $1, last_seen = NOW(), updated_at = NOW() WHERE id = $2`,
		connected, deviceID)
	if err != nil {
		return fmt.Errorf("failed to update data-plane status: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateDeviceLastSeen(ctx context.Context, deviceID uuid.UUID, at time.Time) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE devices SET last_seen = $1, updated_at = NOW() WHERE id = $2`, at, deviceID)
	if err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	return nil
}

func (p *Postgres) SetDeviceDisabled(ctx context.Context, deviceID uuid.UUID, disabled bool) error {
	var err error
	if disabled {
		_, err = p.pool.Exec(ctx,
			`UPDATE devices SET is_disabled = TRUE, disabled_at = NOW(), status = 'disabled', updated_at = NOW()
			 WHERE id = $1`, deviceID)
	} else {
		_, err = p.pool.Exec(ctx,
			`UPDATE devices SET is_disabled = FALSE, disabled_at = NULL, status = 'offline', updated_at = NOW()
			 WHERE id = $1`, deviceID)
	}
	if err != nil {
		return fmt.Errorf("failed to set disabled state: %w", err)
	}
	return nil
}

// SetDeviceUninstalling transitions the device into the uninstalling state.
// Deleting the device record is only permitted once this state is observed;
// that rule is enforced by the device CRUD service, but the transition
// originates here.
func (p *Postgres) SetDeviceUninstalling(ctx context.Context, deviceID uuid.UUID) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE devices SET status = 'uninstalling', updated_at = NOW() WHERE id = $1`, deviceID)
	if err != nil {
		return fmt.Errorf("failed to mark device uninstalling: %w", err)
	}
	return nil
}

func (p *Postgres) SetDeviceMetricsInterval(ctx context.Context, deviceID uuid.UUID, intervalSeconds int) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE devices SET metrics_interval = $1, updated_at = NOW() WHERE id = $2`,
		intervalSeconds, deviceID)
	if err != nil {
		return fmt.Errorf("failed to set metrics interval: %w", err)
	}
	return nil
}

func (p *Postgres) InsertMetricsSample(ctx context.Context, s *MetricsSample) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO device_metrics (
			device_id, timestamp, cpu_percent, memory_percent, memory_used, memory_available,
			disk_percent, disk_used, disk_total, network_rx_bytes, network_tx_bytes,
			process_count, uptime
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, s.DeviceID, s.Timestamp, s.CPUPercent, s.MemoryPercent, s.MemoryUsed, s.MemoryAvailable,
		s.DiskPercent, s.DiskUsed, s.DiskTotal, s.NetworkRxBytes, s.NetworkTxBytes,
		s.ProcessCount, s.Uptime)
	if err != nil {
		return fmt.Errorf("failed to insert metrics sample: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateDeviceSystemInfo(ctx context.Context, deviceID uuid.UUID, info *SystemInfo) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE devices SET
			hostname = $1, os_type = $2, os_version = $3, platform = $4, architecture = $5,
			cpu_model = $6, cpu_cores = $7, cpu_threads = $8, cpu_speed = $9, total_memory = $10,
			serial_number = $11, manufacturer = $12, model = $13, updated_at = NOW()
		WHERE id = $14
	`, info.Hostname, info.OS, info.OSVersion, info.Platform, info.Architecture,
		info.CPUModel, info.CPUCores, info.CPUThreads, info.CPUSpeed, info.TotalMemory,
		info.SerialNumber, info.Manufacturer, info.Model, deviceID)
	if err != nil {
		return fmt.Errorf("failed to update system info: %w", err)
	}
	return nil
}

func (p *Postgres) StoreSoftwareInventory(ctx context.Context, deviceID uuid.UUID, software []InstalledSoftware) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin inventory transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM device_software WHERE device_id = $1`, deviceID); err != nil {
		return fmt.Errorf("failed to clear software inventory: %w", err)
	}

	for _, sw := range software {
		if _, err := tx.Exec(ctx, `
			INSERT INTO device_software (device_id, name, version, publisher, install_date)
			VALUES ($1, $2, $3, $4, $5)
		`, deviceID, sw.Name, sw.Version, sw.Publisher, sw.InstallDate); err != nil {
			return fmt.Errorf("failed to insert software entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit software inventory: %w", err)
	}
	return nil
}

func (p *Postgres) StoreLogEntry(ctx context.Context, e *LogEntry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO device_logs (device_id, timestamp, source, level, event_id, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.DeviceID, ts, e.Source, e.Level, e.EventID, e.Message)
	if err != nil {
		return fmt.Errorf("failed to store log entry: %w", err)
	}
	return nil
}

func (p *Postgres) CreateCommand(ctx context.Context, cmd *Command) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO commands (id, device_id, command_type, command, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, cmd.ID, cmd.DeviceID, cmd.CommandType, cmd.Command, cmd.Status)
	if err != nil {
		return fmt.Errorf("failed to create command: %w", err)
	}
	return nil
}

func (p *Postgres) CompleteCommand(ctx context.Context, commandID uuid.UUID, success bool, output, errMsg string, exitCode int) error {
	status := "completed"
	if !success {
		status = "failed"
	}
	_, err := p.pool.Exec(ctx, `
		UPDATE commands SET status = $1, output = $2, error_message = $3, exit_code = $4, completed_at = NOW()
		WHERE id = $5
	`, status, output, errMsg, exitCode, commandID)
	if err != nil {
		return fmt.Errorf("failed to complete command: %w", err)
	}
	return nil
}

func (p *Postgres) CreateUser(ctx context.Context, u *User) error {
	err := p.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Username, u.PasswordHash, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := p.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (p *Postgres) ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, username, password_hash, role, created_at FROM users
		ORDER BY created_at LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	var total int64
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}

func (p *Postgres) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (p *Postgres) RecordCertificateStatus(ctx context.Context, agentID string, certHash string, success bool) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO device_certificates (agent_id, cert_hash, success, distributed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (agent_id) DO UPDATE SET
			cert_hash = EXCLUDED.cert_hash,
			success = EXCLUDED.success,
			distributed_at = NOW()
	`, agentID, certHash, success)
	if err != nil {
		return fmt.Errorf("failed to record certificate status: %w", err)
	}
	return nil
}
