package metadata

/**
 * @brief Describes a job to be run by the job system.
 */
type JobTask struct {
	/** @brief Used in logs. */
	Name string
	/** @brief Invoked on a worker when the job starts. Required. */
	OnStart func() error
	/** @brief Invoked on the worker after OnStart succeeded. Optional. */
	OnComplete func()
	/** @brief Invoked on the worker after OnStart failed or panicked. Optional. */
	OnFailure func(err error)
}
