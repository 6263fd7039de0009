package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "postiq_"

const (
	TABLE_USER_STATE                 = TableName("user_states")
	TABLE_CACHED_FILE                = TableName("cached_files")
	TABLE_LLM_CHAT                   = TableName("llm_chats")
	TABLE_LLM_MESSAGE                = TableName("llm_messages")
	TABLE_VIZARD_VIDEO_CUT_ALERT     = TableName("vizard_video_cut_alerts")
	TABLE_PUBLICATION_APPROVED_ALERT = TableName("publication_approved_alerts")
	TABLE_PUBLICATION_REJECTED_ALERT = TableName("publication_rejected_alerts")
	TABLE_MIGRATION_HISTORY          = TableName("migration_history")
)
