package repository

const (
	getVideoByIDQuery = `SELECT video_id, user_id, file_name, file_size, s3_key, s3_bucket, status, uploaded_at FROM video_files
					WHERE video_id = ?`
	countVideosByUserSinceQuery = `SELECT COUNT(video_id) FROM video_files WHERE user_id = ? AND uploaded_at >= ?`
)
