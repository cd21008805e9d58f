// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the record store behind the registration and OTP services.

# Reads

	reg, err := st.FindRegistration(ctx, "business", email)
	regs, err := st.ListRegistrations(ctx, "business")
	recs, err := st.FindMemberRecordsByPhone(ctx, "bid-wise", phones)

Single-record lookups return ErrNotFound when nothing matches.

# Transactions

Registration writes go through RunInTx so a registration and its member
records are committed or rolled back together:

	err := st.RunInTx(ctx, func(w store.Writer) error {
		if err := w.InsertRegistration(ctx, reg); err != nil {
			return err
		}
		return w.InsertMemberRecords(ctx, records)
	})

# Errors

  - ErrNotFound: no matching record
  - ErrConflict: a unique constraint rejected the write (PostgreSQL 23505 or
    SQLite SQLITE_CONSTRAINT_UNIQUE)
  - *StorageError: anything else, including context deadlines

Callers apply their own timeouts through the context.
*/
package store
