/*
Package errors provides semantic error types for the entitymapper commit pipeline.

Each failure class of a commit has a sentinel and a typed error. The typed errors
match their sentinel through errors.Is, and the wrapping ones expose their cause
through errors.Unwrap.

Common Errors:

	var (
	    ErrMetadata      = errors.New("entity metadata unavailable")
	    ErrGeneration    = errors.New("key generation failed")
	    ErrPersistence   = errors.New("persistence failed")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	)

Usage:

	n, err := people.CommitChanges(ctx)
	if err != nil {
	    switch {
	    case errors.IsGenerationError(err):
	        // nothing was written and no key was touched
	    case errors.IsPersistenceError(err):
	        var pe *errors.PersistenceError
	        stderrors.As(err, &pe)
	        log.Printf("row %d rejected after %d writes", pe.Index, pe.Affected)
	    }
	}

A MetadataError is raised before any store or storage call. A GenerationError is
raised before any insert. A PersistenceError carries the index of the rejected row
(-1 for a rejected bulk load) and the number of rows written before it.
*/
package errors
