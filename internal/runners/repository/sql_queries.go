package repository

const (
	createRunnerJobQuery = `INSERT INTO runner_jobs (uuid, type, payload, private_payload, priority, state, depends_on_runner_job_id, created_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`
	getRunnerJobByUUIDQuery = `SELECT id, uuid, type, payload, private_payload, priority, state, depends_on_runner_job_id, created_at
					FROM runner_jobs WHERE uuid = ?`
)
