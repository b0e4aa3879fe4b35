package setting

// Keys of the persisted settings store.
const (
	KeyDailySyncEnabled   = "sync_daily_enabled"
	KeyDailySyncHour      = "sync_daily_hour"
	KeyRealtimeEnabled    = "sync_realtime_enabled"
	KeyRealtimeInterval   = "sync_realtime_interval"
	KeyWindowMarginBefore = "sync_window_margin_before"
	KeyWindowMarginAfter  = "sync_window_margin_after"
	KeyFallbackLastRun    = "fallback_last_run"
	KeyPrimaryLastRun     = "primary_last_run"
	KeyRealtimeLastRun    = "realtime_last_run"
)
