//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

// Report SQL against the normalized schema. All totals are
// ProductUnitPrice * QuantityOrdered aggregates; per-order and per-customer
// reports round to two decimal places, the regional and temporal rollups
// round to whole units.

const customerOrdersSQL = `
SELECT
    Cust.FirstName || ' ' || Cust.LastName AS Name,
    Prod.ProductName,
    Ord.OrderDate,
    Prod.ProductUnitPrice,
    Ord.QuantityOrdered,
    ROUND(Prod.ProductUnitPrice * Ord.QuantityOrdered, 2) AS Total
FROM OrderDetail Ord
JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
JOIN Product Prod ON Ord.ProductID = Prod.ProductID
WHERE Cust.FirstName || ' ' || Cust.LastName = ?`

const customerTotalSQL = `
SELECT
    Cust.FirstName || ' ' || Cust.LastName AS Name,
    ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered), 2) AS Total
FROM OrderDetail Ord
JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
JOIN Product Prod ON Ord.ProductID = Prod.ProductID
WHERE Cust.FirstName || ' ' || Cust.LastName = ?
GROUP BY Name`

const customerRankingsSQL = `
SELECT
    Cust.FirstName || ' ' || Cust.LastName AS Name,
    ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered), 2) AS Total
FROM OrderDetail Ord
JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
JOIN Product Prod ON Ord.ProductID = Prod.ProductID
GROUP BY Name
ORDER BY Total DESC`

const regionTotalsSQL = `
SELECT
    Reg.Region,
    ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered), 2) AS Total
FROM OrderDetail Ord
JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
JOIN Product Prod ON Ord.ProductID = Prod.ProductID
JOIN Country Cntry ON Cust.CountryID = Cntry.CountryID
JOIN Region Reg ON Cntry.RegionID = Reg.RegionID
GROUP BY Reg.Region
ORDER BY Total DESC`

const countryTotalsSQL = `
SELECT
    Cntry.Country,
    ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered)) AS Total
FROM OrderDetail Ord
JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
JOIN Product Prod ON Ord.ProductID = Prod.ProductID
JOIN Country Cntry ON Cust.CountryID = Cntry.CountryID
GROUP BY Cntry.Country
ORDER BY Total DESC`

const countryRegionRankSQL = `
SELECT
    Reg.Region,
    Cntry.Country,
    ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered)) AS CountryTotal,
    RANK() OVER (
        PARTITION BY Reg.Region
        ORDER BY SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered) DESC
    ) AS TotalRank
FROM OrderDetail Ord
JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
JOIN Product Prod ON Ord.ProductID = Prod.ProductID
JOIN Country Cntry ON Cust.CountryID = Cntry.CountryID
JOIN Region Reg ON Cntry.RegionID = Reg.RegionID
GROUP BY Reg.Region, Cntry.Country
ORDER BY Reg.Region ASC`

const regionTopCountrySQL = `
WITH RankedCountries AS (
    SELECT
        Reg.Region,
        Cntry.Country,
        ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered)) AS CountryTotal,
        RANK() OVER (
            PARTITION BY Reg.Region
            ORDER BY SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered) DESC
        ) AS CountryRank
    FROM OrderDetail Ord
    JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
    JOIN Product Prod ON Ord.ProductID = Prod.ProductID
    JOIN Country Cntry ON Cust.CountryID = Cntry.CountryID
    JOIN Region Reg ON Cntry.RegionID = Reg.RegionID
    GROUP BY Reg.Region, Cntry.Country
)
SELECT Region, Country, CountryTotal, CountryRank
FROM RankedCountries
WHERE CountryRank = 1
ORDER BY Region ASC`

const quarterlySalesSQL = `
WITH CustomerSales AS (
    SELECT
        CASE
            WHEN CAST(SUBSTR(Ord.OrderDate, 6, 2) AS INTEGER) BETWEEN 1 AND 3 THEN 'Q1'
            WHEN CAST(SUBSTR(Ord.OrderDate, 6, 2) AS INTEGER) BETWEEN 4 AND 6 THEN 'Q2'
            WHEN CAST(SUBSTR(Ord.OrderDate, 6, 2) AS INTEGER) BETWEEN 7 AND 9 THEN 'Q3'
            ELSE 'Q4'
        END AS Quarter,
        CAST(SUBSTR(Ord.OrderDate, 1, 4) AS INTEGER) AS Year,
        Ord.CustomerID,
        ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered)) AS Total
    FROM OrderDetail Ord
    JOIN Product Prod ON Ord.ProductID = Prod.ProductID
    GROUP BY Quarter, Year, Ord.CustomerID
)
SELECT Quarter, Year, CustomerID, Total
FROM CustomerSales
ORDER BY Year ASC, Quarter ASC, CustomerID ASC`

const quarterlyTop5SQL = `
WITH CustomerSales AS (
    SELECT
        CASE
            WHEN CAST(SUBSTR(Ord.OrderDate, 6, 2) AS INTEGER) BETWEEN 1 AND 3 THEN 'Q1'
            WHEN CAST(SUBSTR(Ord.OrderDate, 6, 2) AS INTEGER) BETWEEN 4 AND 6 THEN 'Q2'
            WHEN CAST(SUBSTR(Ord.OrderDate, 6, 2) AS INTEGER) BETWEEN 7 AND 9 THEN 'Q3'
            ELSE 'Q4'
        END AS Quarter,
        CAST(SUBSTR(Ord.OrderDate, 1, 4) AS INTEGER) AS Year,
        Ord.CustomerID,
        ROUND(SUM(Prod.ProductUnitPrice * Ord.QuantityOrdered)) AS Total
    FROM OrderDetail Ord
    JOIN Product Prod ON Ord.ProductID = Prod.ProductID
    GROUP BY Quarter, Year, Ord.CustomerID
),
RankedSales AS (
    SELECT
        Quarter, Year, CustomerID, Total,
        RANK() OVER (PARTITION BY Year, Quarter ORDER BY Total DESC) AS CustomerRank
    FROM CustomerSales
)
SELECT Quarter, Year, CustomerID, Total, CustomerRank
FROM RankedSales
WHERE CustomerRank <= 5
ORDER BY Year ASC, Quarter ASC, CustomerRank ASC`

const monthlyRankingsSQL = `
WITH MonthlySales AS (
    SELECT
        CASE SUBSTR(Ord.OrderDate, 6, 2)
            WHEN '01' THEN 'January'
            WHEN '02' THEN 'February'
            WHEN '03' THEN 'March'
            WHEN '04' THEN 'April'
            WHEN '05' THEN 'May'
            WHEN '06' THEN 'June'
            WHEN '07' THEN 'July'
            WHEN '08' THEN 'August'
            WHEN '09' THEN 'September'
            WHEN '10' THEN 'October'
            WHEN '11' THEN 'November'
            WHEN '12' THEN 'December'
        END AS Month,
        SUM(ROUND(Prod.ProductUnitPrice * Ord.QuantityOrdered)) AS Total
    FROM Product Prod
    JOIN OrderDetail Ord ON Ord.ProductID = Prod.ProductID
    GROUP BY Month
)
SELECT Month, ROUND(Total) AS Total,
    RANK() OVER (ORDER BY Total DESC) AS TotalRank
FROM MonthlySales
ORDER BY TotalRank ASC`

const orderGapsSQL = `
WITH CustomerOrders AS (
    SELECT
        Cust.CustomerID,
        Cust.FirstName,
        Cust.LastName,
        Cntry.Country,
        Ord.OrderDate,
        LAG(Ord.OrderDate) OVER (
            PARTITION BY Cust.CustomerID ORDER BY Ord.OrderDate
        ) AS PreviousOrderDate
    FROM OrderDetail Ord
    JOIN Customer Cust ON Ord.CustomerID = Cust.CustomerID
    JOIN Country Cntry ON Cust.CountryID = Cntry.CountryID
),
DaysBetweenOrders AS (
    SELECT
        CustomerID,
        FirstName,
        LastName,
        Country,
        OrderDate,
        PreviousOrderDate,
        JULIANDAY(OrderDate) - JULIANDAY(PreviousOrderDate) AS DaysWithoutOrder
    FROM CustomerOrders
    WHERE PreviousOrderDate IS NOT NULL
),
MaxDays AS (
    SELECT CustomerID, MAX(DaysWithoutOrder) AS MaxDaysWithoutOrder
    FROM DaysBetweenOrders
    GROUP BY CustomerID
)
SELECT
    D.CustomerID, D.FirstName, D.LastName, D.Country,
    D.OrderDate, D.PreviousOrderDate, M.MaxDaysWithoutOrder
FROM DaysBetweenOrders D
JOIN MaxDays M
    ON D.CustomerID = M.CustomerID
    AND D.DaysWithoutOrder = M.MaxDaysWithoutOrder
WHERE D.OrderDate = (
    SELECT MIN(DB.OrderDate)
    FROM DaysBetweenOrders DB
    WHERE DB.CustomerID = D.CustomerID
        AND DB.DaysWithoutOrder = M.MaxDaysWithoutOrder
)
ORDER BY M.MaxDaysWithoutOrder DESC, D.CustomerID DESC`
