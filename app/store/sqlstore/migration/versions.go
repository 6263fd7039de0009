package migration

// TargetVersion is what the serve command migrates to on boot.
const TargetVersion = "v1_0_0"

// Registered returns every known migration in registration order.
func Registered() []Migration {
	return []Migration{
		{
			Version: "v0_0_1",
			Name:    "create_user_states",
			UpSQL: []string{`
				CREATE TABLE IF NOT EXISTS postiq_user_states (
					id BIGSERIAL PRIMARY KEY,
					tg_chat_id BIGINT NOT NULL UNIQUE,
					tg_username VARCHAR(255) NOT NULL DEFAULT '',
					account_id BIGINT NOT NULL DEFAULT 0,
					organization_id BIGINT NOT NULL DEFAULT 0,
					access_token TEXT NOT NULL DEFAULT '',
					can_show_alerts BOOLEAN NOT NULL DEFAULT TRUE,
					created_at BIGINT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_user_states_account_id ON postiq_user_states (account_id)`,
			},
			DownSQL: []string{
				`DROP TABLE IF EXISTS postiq_user_states`,
			},
		},
		{
			Version:   "v0_0_5",
			Name:      "create_cached_files",
			DependsOn: "",
			UpSQL: []string{`
				CREATE TABLE IF NOT EXISTS postiq_cached_files (
					id BIGSERIAL PRIMARY KEY,
					filename VARCHAR(512) NOT NULL UNIQUE,
					file_id TEXT NOT NULL,
					created_at BIGINT NOT NULL
				)`,
			},
			DownSQL: []string{
				`DROP TABLE IF EXISTS postiq_cached_files`,
			},
		},
		{
			Version: "v0_0_10",
			Name:    "create_llm_chats",
			UpSQL: []string{`
				CREATE TABLE IF NOT EXISTS postiq_llm_chats (
					id BIGSERIAL PRIMARY KEY,
					tg_chat_id BIGINT NOT NULL,
					purpose VARCHAR(64) NOT NULL,
					created_at BIGINT NOT NULL,
					UNIQUE (tg_chat_id, purpose)
				)`, `
				CREATE TABLE IF NOT EXISTS postiq_llm_messages (
					id BIGSERIAL PRIMARY KEY,
					chat_id BIGINT NOT NULL REFERENCES postiq_llm_chats(id) ON DELETE CASCADE,
					role VARCHAR(16) NOT NULL,
					text TEXT NOT NULL,
					created_at BIGINT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_llm_messages_chat_id ON postiq_llm_messages (chat_id)`,
			},
			DownSQL: []string{
				`DROP TABLE IF EXISTS postiq_llm_messages`,
				`DROP TABLE IF EXISTS postiq_llm_chats`,
			},
		},
		{
			Version: "v0_0_19",
			Name:    "create_publication_alerts",
			UpSQL: []string{`
				CREATE TABLE IF NOT EXISTS postiq_publication_approved_alerts (
					id BIGSERIAL PRIMARY KEY,
					state_id BIGINT NOT NULL,
					publication_id VARCHAR(64) NOT NULL,
					created_at BIGINT NOT NULL
				)`, `
				CREATE TABLE IF NOT EXISTS postiq_publication_rejected_alerts (
					id BIGSERIAL PRIMARY KEY,
					state_id BIGINT NOT NULL,
					publication_id VARCHAR(64) NOT NULL,
					created_at BIGINT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_pub_approved_alerts_state ON postiq_publication_approved_alerts (state_id)`,
				`CREATE INDEX IF NOT EXISTS idx_pub_rejected_alerts_state ON postiq_publication_rejected_alerts (state_id)`,
			},
			DownSQL: []string{
				`DROP TABLE IF EXISTS postiq_publication_approved_alerts`,
				`DROP TABLE IF EXISTS postiq_publication_rejected_alerts`,
			},
		},
		{
			// Deliberately free-standing: the recovery column piggybacks
			// on the user_states table only when it already exists, so a
			// single out-of-order apply still succeeds on a fresh schema.
			Version: "v1_0_0",
			Name:    "vizard_alerts_and_recovery_flag",
			UpSQL: []string{`
				CREATE TABLE IF NOT EXISTS postiq_vizard_video_cut_alerts (
					id BIGSERIAL PRIMARY KEY,
					state_id BIGINT NOT NULL,
					youtube_video_reference TEXT NOT NULL,
					video_count INT NOT NULL DEFAULT 0,
					created_at BIGINT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_vizard_alerts_state ON postiq_vizard_video_cut_alerts (state_id)`,
				`ALTER TABLE IF EXISTS postiq_user_states ADD COLUMN IF NOT EXISTS show_error_recovery BOOLEAN NOT NULL DEFAULT FALSE`,
			},
			DownSQL: []string{
				`DROP TABLE IF EXISTS postiq_vizard_video_cut_alerts`,
				`ALTER TABLE IF EXISTS postiq_user_states DROP COLUMN IF EXISTS show_error_recovery`,
			},
		},
	}
}
