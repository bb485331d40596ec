/*
Package alegra-sharepoint-sync mirrors accounting records from the Alegra API
into SharePoint lists through the Microsoft Graph API.

alegra-sharepoint-sync can be used from the command line but is really intended
to be run from a cron job that keeps a set of SharePoint lists (sales invoices
and their items, payments, purchase invoices with their expense categories and
retentions, the chart of accounts and the product catalogue) in step with the
corresponding Alegra records.

alegra-sharepoint-sync supports the following commands:

  - invoices, to upload yesterday's sales invoices and their line items
  - payments, to upload yesterday's received payments as unified records
  - bills, to upload yesterday's purchase invoices with categories and retentions
  - accounts, to upload the chart of accounts, roots before children
  - items, to upload the product and service catalogue
  - history, to backfill a date range and leave an .xlsx snapshot on the drive
  - sync, to repair payment records that were uploaded before a client was assigned
  - run, to execute the daily income sequence (invoices, payments, sync)
*/
package sync
